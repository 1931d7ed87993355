package twelvedata

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jonathan/dividend-extractor/internal/types"
)

// stocksPayload is the /stocks response envelope. The data field is either a
// list of listings or a single object depending on how specific the query was.
type stocksPayload struct {
	Data json.RawMessage `json:"data"`
}

type stockListing struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// SymbolInfo resolves a symbol to its canonical display name and exchange via
// the /stocks endpoint. When the response data is a list the first element
// wins. Returns nil when the API has no listing for the symbol. The
// input-supplied exchange is used as a fallback when the listing omits it.
func (c *Client) SymbolInfo(ctx context.Context, symbol, exchange string) (*types.InstrumentInfo, error) {
	params := map[string]string{"symbol": symbol}
	if exchange != "" {
		params["exchange"] = exchange
	}

	payload, err := c.Get(ctx, "stocks", params)
	if err != nil {
		return nil, err
	}

	var envelope stocksPayload
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, &Error{Endpoint: "stocks", Message: "unexpected response shape", Cause: err}
	}
	if len(envelope.Data) == 0 {
		return nil, nil
	}

	var listing stockListing
	var listings []stockListing
	if err := json.Unmarshal(envelope.Data, &listings); err == nil {
		if len(listings) == 0 {
			return nil, nil
		}
		listing = listings[0]
	} else if err := json.Unmarshal(envelope.Data, &listing); err != nil {
		return nil, &Error{Endpoint: "stocks", Message: "unexpected data shape", Cause: err}
	}

	info := &types.InstrumentInfo{Name: listing.Name, Exchange: listing.Exchange}
	if info.Exchange == "" {
		info.Exchange = exchange
	}

	if c.debug {
		log.Printf("[DEBUG] twelvedata: resolved %s to %q on %s", symbol, info.Name, info.Exchange)
	}
	return info, nil
}
