package twelvedata

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"github.com/jonathan/dividend-extractor/internal/types"
)

// flexNumber decodes a JSON number that the API serves either as a number or
// as a quoted string. Null and empty values decode to zero.
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexNumber(v)
	return nil
}

// dividendRow is one /dividends_calendar record.
type dividendRow struct {
	Symbol string     `json:"symbol"`
	ExDate string     `json:"ex_date"`
	Amount flexNumber `json:"amount"`
}

// DividendsCalendar lists declared dividend events for a symbol in the date
// range. The endpoint returns a flat array covering possibly more than one
// symbol, so rows are filtered to the requested symbol and projected down to
// the ex-date and amount fields.
func (c *Client) DividendsCalendar(ctx context.Context, symbol, exchange, startDate, endDate string) ([]types.DividendEvent, error) {
	params := map[string]string{
		"symbol":     symbol,
		"start_date": startDate,
		"end_date":   endDate,
	}
	if exchange != "" {
		params["exchange"] = exchange
	}

	payload, err := c.Get(ctx, "dividends_calendar", params)
	if err != nil {
		return nil, err
	}

	var rows []dividendRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		// Anything other than a flat array means no usable dividend data.
		if c.debug {
			log.Printf("[DEBUG] twelvedata: dividends_calendar returned a non-array payload for %s", symbol)
		}
		return nil, nil
	}

	events := make([]types.DividendEvent, 0, len(rows))
	for _, row := range rows {
		if row.Symbol != symbol {
			continue
		}
		events = append(events, types.DividendEvent{ExDate: row.ExDate, Amount: float64(row.Amount)})
	}

	if c.debug {
		log.Printf("[DEBUG] twelvedata: %d dividend records for %s between %s and %s",
			len(events), symbol, startDate, endDate)
	}
	return events, nil
}
