package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/dividend-extractor/internal/types"
)

func TestWriteResults_EmptyRunWritesEmptyArray(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteResults(nil, dir, "2024-01-01", "2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dividends_data_2024-01-01_2024-06-30.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteResults_PreservesNonASCIIAndFormatting(t *testing.T) {
	dir := t.TempDir()
	results := []types.SymbolResult{{
		Ticker:         "GLE",
		InstrumentName: "Société Générale S.A. <Banque & Assurance>",
		Exchange:       "Euronext",
		Dividends:      []types.DividendEvent{{ExDate: "2024-05-28", Amount: 0.9}},
		SECReports:     []types.Filing{},
	}}

	path, err := WriteResults(results, dir, "2024-01-01", "2024-06-30")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Non-ASCII and HTML-sensitive characters survive verbatim.
	assert.Contains(t, string(data), "Société Générale S.A. <Banque & Assurance>")
	// 2-space indentation.
	assert.Contains(t, string(data), "\n  {\n    \"ticker\": \"GLE\",")
	// No stray temp file left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteResults_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")

	_, err := WriteResults(nil, dir, "2024-01-01", "2024-06-30")
	require.NoError(t, err)
}

func TestWriteResults_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := WriteResults(nil, file, "2024-01-01", "2024-06-30")
	require.Error(t, err)
}
