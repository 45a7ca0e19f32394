// Package csvfile persists the restaurant table as UTF-8 CSV with a header row.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/texas-bbq-etl/internal/domain"
)

// ErrMissingColumn is returned when a table lacks a required header column.
var ErrMissingColumn = errors.New("missing required column")

// Encode writes records to w as CSV, header first. Absent values are empty cells.
func Encode(w io.Writer, records []domain.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(toRow(r)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func toRow(r domain.Record) []string {
	row := []string{r.Name, r.City, r.Year, "", r.Description, r.RawLocation, "", "", r.RestaurantKey}
	if r.Rank != nil {
		row[3] = strconv.Itoa(*r.Rank)
	}
	if r.Latitude != nil {
		row[6] = strconv.FormatFloat(*r.Latitude, 'f', -1, 64)
	}
	if r.Longitude != nil {
		row[7] = strconv.FormatFloat(*r.Longitude, 'f', -1, 64)
	}
	return row
}

// Decode reads a table written by Encode. Columns are matched by header
// name; unknown columns are ignored and "name" and "year" are required.
func Decode(r io.Reader) ([]domain.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}
	for _, required := range []string{"name", "year"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var records []domain.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		rec, err := fromRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func fromRow(row []string, index map[string]int) (domain.Record, error) {
	cell := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	r := domain.Record{
		Name:          cell("name"),
		City:          cell("city"),
		Year:          cell("year"),
		Description:   cell("description"),
		RawLocation:   cell("raw_location"),
		RestaurantKey: cell("restaurant_key"),
	}
	if s := cell("rank"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return r, fmt.Errorf("rank %q: %w", s, err)
		}
		r.Rank = &n
	}
	var err error
	if r.Latitude, err = parseCoord(cell("latitude")); err != nil {
		return r, fmt.Errorf("latitude: %w", err)
	}
	if r.Longitude, err = parseCoord(cell("longitude")); err != nil {
		return r, fmt.Errorf("longitude: %w", err)
	}
	return r, nil
}

func parseCoord(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// WriteFile replaces the table at path. Parent directories are created and
// the file is swapped in by rename, so readers never see a partial table.
func WriteFile(path string, records []domain.Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if err := Encode(tmp, records); err != nil {
		tmp.Close() //nolint:errcheck,gosec // already failing
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// ReadFile loads the table at path.
func ReadFile(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Writer is the CSV table sink used by the scrape run.
// It implements pipeline.BatchLoader.
type Writer struct {
	path string
}

// NewWriter creates a sink that replaces the table at path on every load.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the table location.
func (w *Writer) Path() string { return w.path }

// LoadBatch writes the full table.
func (w *Writer) LoadBatch(_ context.Context, records []domain.Record) error {
	return WriteFile(w.path, records)
}
