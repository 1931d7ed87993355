// Package types defines the shared data structures for the dividend extraction pipeline.
package types

// SymbolRecord is one entry from the input symbol list: a ticker and,
// optionally, the exchange it trades on.
type SymbolRecord struct {
	Ticker   string
	Exchange string
}

// InstrumentInfo is the resolved metadata for a symbol. Exchange falls back to
// the input-supplied value when the remote source omits it.
type InstrumentInfo struct {
	Name     string
	Exchange string
}

// FilingDocument is a single document reference inside a filing. Only
// documents whose content matched the dividend keyword are retained.
type FilingDocument struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Filing is a regulatory disclosure with its matched documents. A filing with
// no matched documents is dropped entirely rather than kept with an empty
// file list.
type Filing struct {
	URL     string           `json:"url"`
	FiledAt string           `json:"filed_at"`
	Files   []FilingDocument `json:"files"`
}

// DividendEvent is a declared distribution: ex-dividend date and per-share amount.
type DividendEvent struct {
	ExDate string  `json:"ex_date"`
	Amount float64 `json:"amount"`
}

// SymbolResult is the consolidated output record for one successfully
// processed symbol.
type SymbolResult struct {
	Ticker         string          `json:"ticker"`
	InstrumentName string          `json:"instrument_name"`
	Exchange       string          `json:"exchange"`
	Dividends      []DividendEvent `json:"dividends"`
	SECReports     []Filing        `json:"sec_reports"`
}
