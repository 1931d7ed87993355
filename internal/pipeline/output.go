package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/dividend-extractor/internal/types"
)

// OutputFilename returns the dated artifact name for a run.
func OutputFilename(startDate, endDate string) string {
	return fmt.Sprintf("dividends_data_%s_%s.json", startDate, endDate)
}

// WriteResults serializes the accumulated results to
// <outDir>/dividends_data_<start>_<end>.json with 2-space indentation and
// HTML escaping disabled, so non-ASCII instrument names survive verbatim. The
// artifact is written through a temp file and rename, so a failed run never
// leaves a truncated file behind.
func WriteResults(results []types.SymbolResult, outDir, startDate, endDate string) (string, error) {
	if err := ensureDir(outDir); err != nil {
		return "", err
	}
	if results == nil {
		results = []types.SymbolResult{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return "", fmt.Errorf("failed to encode results: %w", err)
	}

	path := filepath.Join(outDir, OutputFilename(startDate, endDate))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("failed to move output into place: %w", err)
	}
	return path, nil
}
