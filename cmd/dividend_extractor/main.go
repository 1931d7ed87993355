// Package main implements the dividend_extractor CLI for collecting
// per-symbol dividend and SEC report data into a JSON artifact.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dividend_extractor",
	Short: "Twelve Data dividends and SEC reports extractor",
	Long:  "dividend_extractor fetches company metadata, dividend calendars, and 8-K filings for a list of ticker symbols, keeps the filings that mention dividends, and writes one consolidated JSON dataset.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
