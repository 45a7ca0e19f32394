package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/texas-bbq-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/texas-bbq-etl/internal/domain"
)

const sampleRows = 5

func newAnalyzeCmd() *cobra.Command {
	var (
		in  string
		top int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print row counts, column completeness and the top cities.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if top < 1 {
				return fmt.Errorf("--top must be at least 1, got %d", top)
			}
			records, err := csvfile.ReadFile(in)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("%s has no rows", in)
			}
			report(cmd.OutOrStdout(), records, top)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "texas_monthly_bbq_restaurants_cleaned.csv", "table to analyze")
	cmd.Flags().IntVar(&top, "top", 10, "number of cities to list")
	return cmd
}

func report(w io.Writer, records []domain.Record, top int) {
	cities := domain.CityCounts(records)

	t := newTable(w, "Summary")
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Rows", len(records)},
		{"Unique restaurants", domain.UniqueNames(records)},
		{"Cities", len(cities)},
		{"Years", fmt.Sprint(years(records))},
	})
	t.Render()

	t = newTable(w, "Completeness")
	t.AppendHeader(table.Row{"Column", "Present", "Missing", "%"})
	for _, fc := range domain.Completeness(records) {
		pct := 100 * float64(fc.Present) / float64(len(records))
		t.AppendRow(table.Row{fc.Column, fc.Present, len(records) - fc.Present, fmt.Sprintf("%.1f", pct)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()

	t = newTable(w, fmt.Sprintf("Top %d cities by unique restaurants", top))
	t.AppendHeader(table.Row{"#", "City", "Restaurants"})
	for i, c := range cities[:min(top, len(cities))] {
		t.AppendRow(table.Row{i + 1, c.City, c.Count})
	}
	t.Render()

	t = newTable(w, "Sample rows")
	t.AppendHeader(table.Row{"Name", "City", "Year", "Rank"})
	for _, r := range records[:min(sampleRows, len(records))] {
		rank := ""
		if r.Rank != nil {
			rank = strconv.Itoa(*r.Rank)
		}
		t.AppendRow(table.Row{r.Name, r.City, r.Year, rank})
	}
	t.Render()
}

// newTable prints title on its own line and returns a table mirrored to w.
// go-pretty wraps a title wider than the table body, so it is not set on the
// table itself.
func newTable(w io.Writer, title string) table.Writer {
	fmt.Fprintf(w, "\n%s\n", title)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

// years returns the distinct edition years, newest first.
func years(records []domain.Record) []string {
	var out []string
	for _, r := range records {
		if !slices.Contains(out, r.Year) {
			out = append(out, r.Year)
		}
	}
	slices.SortFunc(out, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(b, a)
	})
	return out
}
