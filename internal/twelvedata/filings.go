package twelvedata

import (
	"context"
	"encoding/json"
	"log"
)

// ArchiveFiling is one regulatory filing as returned by the
// /edgar_filings/archive endpoint. FiledAt is unix seconds.
type ArchiveFiling struct {
	CIK       int64         `json:"cik"`
	FilingURL string        `json:"filing_url"`
	FiledAt   int64         `json:"filed_at"`
	FormType  string        `json:"form_type"`
	Files     []ArchiveFile `json:"files"`
}

// ArchiveFile is a single document reference inside an archive filing.
type ArchiveFile struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

type filingsPayload struct {
	Values []ArchiveFiling `json:"values"`
}

// FilingsArchive lists 8-K filings for a symbol in the date range. An empty
// values array (or a response without one) yields an empty slice, not an
// error; the caller decides whether that drops the symbol.
func (c *Client) FilingsArchive(ctx context.Context, symbol, exchange, startDate, endDate string) ([]ArchiveFiling, error) {
	params := map[string]string{
		"symbol":      symbol,
		"filled_from": startDate,
		"filled_to":   endDate,
		"form_type":   "8-K",
	}
	if exchange != "" {
		params["exchange"] = exchange
	}

	payload, err := c.Get(ctx, "edgar_filings/archive", params)
	if err != nil {
		return nil, err
	}

	var envelope filingsPayload
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, &Error{Endpoint: "edgar_filings/archive", Message: "unexpected response shape", Cause: err}
	}

	if c.debug {
		log.Printf("[DEBUG] twelvedata: %d filings for %s between %s and %s",
			len(envelope.Values), symbol, startDate, endDate)
	}
	return envelope.Values, nil
}
