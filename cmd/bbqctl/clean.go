package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/texas-bbq-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/texas-bbq-etl/internal/domain"
)

func newCleanCmd() *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove rows that repeat a (name, city, year) triple.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := csvfile.ReadFile(in)
			if err != nil {
				return err
			}
			cleaned := domain.Dedupe(records)
			if err := csvfile.WriteFile(out, cleaned); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d duplicate rows; %d rows written to %s\n",
				len(records)-len(cleaned), len(cleaned), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "texas_monthly_bbq_restaurants.csv", "scraped table to read")
	cmd.Flags().StringVar(&out, "out", "texas_monthly_bbq_restaurants_cleaned.csv", "cleaned table to write")
	return cmd
}
