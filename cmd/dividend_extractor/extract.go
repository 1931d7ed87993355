package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/jonathan/dividend-extractor/internal/config"
	"github.com/jonathan/dividend-extractor/internal/db"
	"github.com/jonathan/dividend-extractor/internal/fetch"
	"github.com/jonathan/dividend-extractor/internal/observability"
	"github.com/jonathan/dividend-extractor/internal/pipeline"
	"github.com/jonathan/dividend-extractor/internal/scanner"
	"github.com/jonathan/dividend-extractor/internal/symbols"
	"github.com/jonathan/dividend-extractor/internal/twelvedata"
)

// documentRateInterval spaces outgoing document downloads to respect EDGAR's
// rate limit. Shared across workers.
const documentRateInterval = time.Second

var extractCmd = &cobra.Command{
	Use:   "extract <start_date> <end_date>",
	Short: "Run the extraction pipeline over the input symbol list",
	Long: `Processes every symbol in the input file: resolves its metadata, scans its
8-K filings for documents mentioning dividends, fetches its declared dividend
events, and writes the consolidated dataset to
<out-dir>/dividends_data_<start>_<end>.json.

Dates are ISO (YYYY-MM-DD). Configuration can be loaded from a JSON file using
--config; command-line flags override config file values.`,
	Args: cobra.ExactArgs(2),
	RunE: runExtract,
}

var (
	extractConfigPath string
	extractInput      string
	extractOutDir     string
	extractBaseURL    string
	extractDBURL      string
	extractLimit      int
	extractWorkers    int
	extractDebug      bool
)

func init() {
	extractCmd.Flags().StringVar(&extractConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	extractCmd.Flags().StringVarP(&extractInput, "input", "i", "", "Path to the symbol list (.csv with symbol_ticker/exchange columns, or a plain ticker list)")
	extractCmd.Flags().StringVarP(&extractOutDir, "out-dir", "o", "", "Directory for the output artifact")
	extractCmd.Flags().StringVar(&extractBaseURL, "base-url", "", "Twelve Data API base URL (override for testing)")
	extractCmd.Flags().StringVar(&extractDBURL, "db-url", "", "PostgreSQL URL for the document cache (optional, defaults to DATABASE_URL env var)")
	extractCmd.Flags().IntVar(&extractLimit, "limit", 0, "Process only the first N symbols (0 = unlimited)")
	extractCmd.Flags().IntVar(&extractWorkers, "workers", 0, "Concurrent symbol workers (default 1; document downloads stay rate limited)")
	extractCmd.Flags().BoolVar(&extractDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var cfg config.Config
	if extractConfigPath != "" {
		loaded, err := config.LoadConfig(extractConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// CLI flags take priority over config file values.
	if cmd.Flags().Changed("input") {
		cfg.Input = extractInput
	}
	if cmd.Flags().Changed("out-dir") {
		cfg.OutDir = extractOutDir
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = extractBaseURL
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = extractDBURL
	}
	if cmd.Flags().Changed("limit") {
		cfg.Limit = extractLimit
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = extractWorkers
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = extractDebug
	}

	cfg.StartDate = args[0]
	cfg.EndDate = args[1]
	cfg.APIKey = os.Getenv(config.EnvAPIKey)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())

	// Validated before any network call.
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := twelvedata.NewClient(twelvedata.ClientOptions{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Debug:   cfg.Debug,
	})
	if err != nil {
		return err
	}

	records, err := symbols.Load(cfg.Input)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d symbols from %s\n", len(records), cfg.Input)

	runID := uuid.NewString()
	limiter := rate.NewLimiter(rate.Every(documentRateInterval), 1)
	inner := fetch.NewFetcher(fetch.NewFakedIdentity(), limiter, 0, cfg.Debug)

	var fetcher scanner.ContentFetcher = inner
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: failed to connect to document cache: %v", err)
			log.Printf("Continuing without caching...")
		} else {
			defer database.Close()
			if err := database.EnsureSchema(ctx); err != nil {
				log.Printf("Warning: failed to prepare document cache: %v", err)
			} else {
				fetcher = fetch.NewCachedFetcher(inner, database, 0, runID, cfg.Debug)
				if cfg.Debug {
					log.Printf("[DEBUG] document cache enabled")
				}
			}
		}
	}

	_, err = pipeline.Run(ctx, pipeline.RunOptions{
		Client:    client,
		Fetcher:   fetcher,
		Symbols:   records,
		StartDate: cfg.StartDate,
		EndDate:   cfg.EndDate,
		Limit:     cfg.Limit,
		Workers:   cfg.Workers,
		OutDir:    cfg.OutDir,
		Debug:     cfg.Debug,
		RunID:     runID,
		Printer:   observability.NewPrinter(os.Stdout),
	})
	return err
}
