package symbols

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/dividend-extractor/internal/types"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV_Success(t *testing.T) {
	path := writeTempFile(t, "symbols.csv", "symbol_ticker,exchange\nAAPL,NASDAQ\n MSFT , NASDAQ \nIBM,NYSE\n")

	records, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []types.SymbolRecord{
		{Ticker: "AAPL", Exchange: "NASDAQ"},
		{Ticker: "MSFT", Exchange: "NASDAQ"},
		{Ticker: "IBM", Exchange: "NYSE"},
	}, records)
}

func TestLoadCSV_SkipsBlankFields(t *testing.T) {
	path := writeTempFile(t, "symbols.csv", "symbol_ticker,exchange\nAAPL,NASDAQ\n,NYSE\nTSLA,\n")

	records, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "AAPL", records[0].Ticker)
}

func TestLoadCSV_ExtraColumns(t *testing.T) {
	path := writeTempFile(t, "symbols.csv", "name,symbol_ticker,exchange\nApple,AAPL,NASDAQ\n")

	records, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, types.SymbolRecord{Ticker: "AAPL", Exchange: "NASDAQ"}, records[0])
}

func TestLoadCSV_MissingHeader(t *testing.T) {
	path := writeTempFile(t, "symbols.csv", "ticker,market\nAAPL,NASDAQ\n")

	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symbol_ticker")
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestLoadPlain_Success(t *testing.T) {
	path := writeTempFile(t, "symbols.txt", "AAPL\n\n# comment\n  MSFT  \nIBM\n")

	records, err := LoadPlain(path)
	require.NoError(t, err)
	assert.Equal(t, []types.SymbolRecord{
		{Ticker: "AAPL"},
		{Ticker: "MSFT"},
		{Ticker: "IBM"},
	}, records)
}

func TestLoad_PicksFormatByExtension(t *testing.T) {
	csvPath := writeTempFile(t, "symbols.csv", "symbol_ticker,exchange\nAAPL,NASDAQ\n")
	txtPath := writeTempFile(t, "symbols.txt", "AAPL\n")

	fromCSV, err := Load(csvPath)
	require.NoError(t, err)
	require.Len(t, fromCSV, 1)
	assert.Equal(t, "NASDAQ", fromCSV[0].Exchange)

	fromTxt, err := Load(txtPath)
	require.NoError(t, err)
	require.Len(t, fromTxt, 1)
	assert.Empty(t, fromTxt[0].Exchange)
}
