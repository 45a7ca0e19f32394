package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "bbqctl",
		Short:        "Clean, analyze and chart a scraped Texas barbecue table.",
		SilenceUsage: true,
	}
	root.AddCommand(newCleanCmd(), newAnalyzeCmd(), newChartCmd())
	return root
}
