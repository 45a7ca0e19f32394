// Package chart renders the restaurants-per-city summary as a PNG bar chart.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/texas-bbq-etl/internal/domain"
)

// DefaultTitle is used when Render is given an empty title.
const DefaultTitle = "Texas Monthly Top 50 BBQ: Unique Restaurants by City"

// ErrNoCities is returned when no record carries a city.
var ErrNoCities = errors.New("no city data available for chart")

var (
	barColor  = color.RGBA{R: 0x8B, G: 0x45, B: 0x13, A: 0xFF} // saddle brown
	gridColor = color.Gray{Y: 0xD0}

	chartWidth    = 12 * vg.Inch
	minHeight     = 8 * vg.Inch
	heightPerCity = 0.3 * vg.Inch
)

// Render draws a horizontal bar chart of unique restaurant names per city,
// largest at the top, and saves it as a PNG at path.
func Render(path string, records []domain.Record, title string) error {
	counts := domain.CityCounts(records)
	if len(counts) == 0 {
		return ErrNoCities
	}
	if title == "" {
		title = DefaultTitle
	}

	p, err := newPlot(counts, title)
	if err != nil {
		return err
	}

	height := vg.Length(len(counts)) * heightPerCity
	if height < minHeight {
		height = minHeight
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	if err := p.Save(chartWidth, height, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

func newPlot(counts []domain.CityCount, title string) (*plot.Plot, error) {
	// Nominal Y positions count from the bottom; reverse so the largest city is on top.
	counts = slices.Clone(counts)
	slices.Reverse(counts)

	values := make(plotter.Values, len(counts))
	cities := make([]string, len(counts))
	labels := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(counts)),
		Labels: make([]string, len(counts)),
	}
	for i, c := range counts {
		values[i] = float64(c.Count)
		cities[i] = c.City
		labels.XYs[i] = plotter.XY{X: float64(c.Count) + 0.05, Y: float64(i)}
		labels.Labels[i] = strconv.Itoa(c.Count)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Number of Unique Restaurants"
	p.Y.Label.Text = "City"
	p.X.Min = 0

	grid := plotter.NewGrid()
	grid.Horizontal.Color = nil
	grid.Vertical.Color = gridColor
	p.Add(grid)

	bars, err := plotter.NewBarChart(values, 0.25*vg.Inch)
	if err != nil {
		return nil, fmt.Errorf("build bars: %w", err)
	}
	bars.Horizontal = true
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)

	valueLabels, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, fmt.Errorf("build labels: %w", err)
	}
	p.Add(valueLabels)

	p.NominalY(cities...)
	return p, nil
}
