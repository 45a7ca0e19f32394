package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/texas-bbq-etl/internal/adapter/chart"
	"github.com/couchcryptid/texas-bbq-etl/internal/adapter/csvfile"
)

func newChartCmd() *cobra.Command {
	var in, out, title string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render unique restaurants per city as a PNG bar chart.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := csvfile.ReadFile(in)
			if err != nil {
				return err
			}
			if err := chart.Render(out, records, title); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "chart written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "texas_monthly_bbq_restaurants_cleaned.csv", "table to chart")
	cmd.Flags().StringVar(&out, "out", "texas_bbq_by_city.png", "PNG file to write")
	cmd.Flags().StringVar(&title, "title", chart.DefaultTitle, "chart title")
	return cmd
}
