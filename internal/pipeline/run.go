// Package pipeline provides the high-level orchestration for an extraction
// run: per-symbol processing, the run driver, and output serialization.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/dividend-extractor/internal/observability"
	"github.com/jonathan/dividend-extractor/internal/scanner"
	"github.com/jonathan/dividend-extractor/internal/schemas"
	"github.com/jonathan/dividend-extractor/internal/twelvedata"
	"github.com/jonathan/dividend-extractor/internal/types"
)

// RunOptions holds everything an extraction run needs. The client and fetcher
// are constructed in the command layer so tests can point them at stub
// servers.
type RunOptions struct {
	Client    *twelvedata.Client
	Fetcher   scanner.ContentFetcher
	Symbols   []types.SymbolRecord
	StartDate string
	EndDate   string
	Limit     int // 0 = unlimited
	Workers   int // <= 1 means sequential
	OutDir    string
	Debug     bool
	RunID     string
	Printer   *observability.Printer // optional
}

// Summary is the end-of-run tally.
type Summary struct {
	RunID      string
	Attempted  int
	Succeeded  int
	Failed     int
	OutputPath string
}

// Run processes all symbols in input order and writes the consolidated JSON
// artifact. Per-symbol failures are logged and skipped; the run itself fails
// only on output write or validation errors (or a cancelled context).
func Run(ctx context.Context, opts RunOptions) (*Summary, error) {
	symbols := opts.Symbols
	if opts.Limit > 0 && len(symbols) > opts.Limit {
		symbols = symbols[:opts.Limit]
		log.Printf("Processing limited to %d symbols", len(symbols))
	}

	sc := scanner.New(opts.Fetcher, opts.Debug)

	// Indexed slice keeps output in input order even with workers.
	slots := make([]*types.SymbolResult, len(symbols))

	group, groupCtx := errgroup.WithContext(ctx)
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	group.SetLimit(workers)

	for i, rec := range symbols {
		fmt.Printf("Progress: %d/%d - Processing %s on %s\n", i+1, len(symbols), rec.Ticker, rec.Exchange)
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			result, err := ProcessSymbol(groupCtx, opts.Client, sc, rec, opts.StartDate, opts.EndDate)
			if err != nil {
				log.Printf("Error processing %s: %v", rec.Ticker, err)
				return nil
			}
			if result == nil {
				log.Printf("Skipped %s: no usable data", rec.Ticker)
				return nil
			}
			slots[i] = result
			if opts.Debug && opts.Printer != nil {
				opts.Printer.PrintSymbolResult(result)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	results := make([]types.SymbolResult, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}

	outputPath, err := WriteResults(results, opts.OutDir, opts.StartDate, opts.EndDate)
	if err != nil {
		return nil, err
	}

	if schemaPath := schemas.ResolveSchemaPath(schemas.OutputSchemaPath); schemaPath != "" {
		if err := schemas.ValidateFile(schemaPath, outputPath); err != nil {
			return nil, fmt.Errorf("output artifact failed schema validation: %w", err)
		}
	} else {
		log.Printf("Warning: %s not found; skipping output validation", schemas.OutputSchemaPath)
	}

	summary := &Summary{
		RunID:      opts.RunID,
		Attempted:  len(symbols),
		Succeeded:  len(results),
		Failed:     len(symbols) - len(results),
		OutputPath: outputPath,
	}
	if opts.Printer != nil {
		opts.Printer.PrintRunSummary(summary.RunID, summary.Attempted, summary.Succeeded, summary.Failed, summary.OutputPath)
	}
	return summary, nil
}

// ProcessSymbol sequences metadata resolution, the filing scan, and the
// dividend fetch for one symbol. Returns nil (and no error) when the symbol
// has no listing, no keyword-matched filings, or no dividend events; all
// three are required to emit a result.
func ProcessSymbol(ctx context.Context, client *twelvedata.Client, sc *scanner.Scanner, rec types.SymbolRecord, startDate, endDate string) (*types.SymbolResult, error) {
	info, err := client.SymbolInfo(ctx, rec.Ticker, rec.Exchange)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, nil
	}

	filings, err := client.FilingsArchive(ctx, rec.Ticker, info.Exchange, startDate, endDate)
	if err != nil {
		return nil, err
	}
	reports, err := sc.Scan(ctx, filings)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, nil
	}

	dividends, err := client.DividendsCalendar(ctx, rec.Ticker, info.Exchange, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if len(dividends) == 0 {
		return nil, nil
	}

	return &types.SymbolResult{
		Ticker:         rec.Ticker,
		InstrumentName: info.Name,
		Exchange:       info.Exchange,
		Dividends:      dividends,
		SECReports:     reports,
	}, nil
}

// ensureDir creates the output directory if needed.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}
