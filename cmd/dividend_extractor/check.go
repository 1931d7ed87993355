package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/dividend-extractor/internal/config"
	"github.com/jonathan/dividend-extractor/internal/twelvedata"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the environment and API connectivity",
	Long:  "Checks that the API key is configured, the input file exists, and the Twelve Data API answers a test lookup.",
	RunE:  runCheck,
}

var (
	checkInput   string
	checkBaseURL string
	checkSymbol  string
)

func init() {
	checkCmd.Flags().StringVarP(&checkInput, "input", "i", "symbols.csv", "Path to the symbol list")
	checkCmd.Flags().StringVar(&checkBaseURL, "base-url", "", "Twelve Data API base URL (override for testing)")
	checkCmd.Flags().StringVar(&checkSymbol, "symbol", "AAPL", "Symbol used for the connectivity test")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Checking dividend extractor setup...")

	apiKey := os.Getenv(config.EnvAPIKey)
	if apiKey == "" {
		return fmt.Errorf("%s is not set; copy .env.example to .env and add your API key", config.EnvAPIKey)
	}
	fmt.Fprintf(out, "✓ %s is set\n", config.EnvAPIKey)

	if _, err := os.Stat(checkInput); err != nil {
		return fmt.Errorf("input file %s not found", checkInput)
	}
	fmt.Fprintf(out, "✓ input file %s found\n", checkInput)

	client, err := twelvedata.NewClient(twelvedata.ClientOptions{
		BaseURL: checkBaseURL,
		APIKey:  apiKey,
		Timeout: 10 * time.Second,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	info, err := client.SymbolInfo(ctx, checkSymbol, "")
	if err != nil {
		return fmt.Errorf("API connectivity test failed: %w", err)
	}
	if info == nil {
		return fmt.Errorf("API returned no data for %s - check your API key", checkSymbol)
	}
	fmt.Fprintf(out, "✓ API connectivity test successful (%s resolved to %q)\n", checkSymbol, info.Name)
	fmt.Fprintln(out, "All checks passed. Example usage:")
	fmt.Fprintln(out, "  dividend_extractor extract 2024-01-01 2024-12-31 --limit 5")
	return nil
}
