// Package symbols loads the input symbol list that drives a pipeline run.
package symbols

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/dividend-extractor/internal/types"
)

// Column headers required in the CSV form of the input file.
const (
	ColumnTicker   = "symbol_ticker"
	ColumnExchange = "exchange"
)

// Load reads the symbol list at path. Files ending in .csv are parsed as a
// two-column CSV with a header row; anything else is treated as a plain
// newline-delimited ticker list.
func Load(path string) ([]types.SymbolRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return LoadCSV(path)
	}
	return LoadPlain(path)
}

// LoadCSV reads (ticker, exchange) pairs from a CSV file. The header row must
// contain symbol_ticker and exchange columns; rows where either field is blank
// are skipped.
func LoadCSV(path string) ([]types.SymbolRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open symbol file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	tickerIdx, exchangeIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case ColumnTicker:
			tickerIdx = i
		case ColumnExchange:
			exchangeIdx = i
		}
	}
	if tickerIdx < 0 || exchangeIdx < 0 {
		return nil, fmt.Errorf("symbol file %s is missing required columns %q and %q", path, ColumnTicker, ColumnExchange)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	records := make([]types.SymbolRecord, 0, len(rows))
	for _, row := range rows {
		if tickerIdx >= len(row) || exchangeIdx >= len(row) {
			continue
		}
		ticker := strings.TrimSpace(row[tickerIdx])
		exchange := strings.TrimSpace(row[exchangeIdx])
		if ticker == "" || exchange == "" {
			continue
		}
		records = append(records, types.SymbolRecord{Ticker: ticker, Exchange: exchange})
	}
	return records, nil
}

// LoadPlain reads a newline-delimited ticker list. Blank lines and lines
// starting with '#' are skipped; the exchange is left empty and resolved from
// the remote metadata later.
func LoadPlain(path string) ([]types.SymbolRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open symbol file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var records []types.SymbolRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		records = append(records, types.SymbolRecord{Ticker: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return records, nil
}
