// Command bbqctl works with a scraped restaurant table after the ETL run:
// it removes duplicate rows, prints a data-quality report and renders the
// city chart.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
