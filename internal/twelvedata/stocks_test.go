package twelvedata

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolInfo_ListResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stocks", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"symbol":"AAPL","name":"Apple Inc.","exchange":"NASDAQ"},{"symbol":"AAPL","name":"Apple CDR","exchange":"NEO"}]}`))
	})

	info, err := client.SymbolInfo(context.Background(), "AAPL", "NASDAQ")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "Apple Inc.", info.Name)
	assert.Equal(t, "NASDAQ", info.Exchange)
}

func TestSymbolInfo_SingleObjectResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"symbol":"AAPL","name":"Apple Inc.","exchange":"NASDAQ"}}`))
	})

	info, err := client.SymbolInfo(context.Background(), "AAPL", "")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "Apple Inc.", info.Name)
}

func TestSymbolInfo_NoData(t *testing.T) {
	for name, body := range map[string]string{
		"missing data": `{}`,
		"empty list":   `{"data":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			info, err := client.SymbolInfo(context.Background(), "ZZZZ", "NYSE")
			require.NoError(t, err)
			assert.Nil(t, info)
		})
	}
}

func TestSymbolInfo_ExchangeFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"symbol":"AAPL","name":"Apple Inc."}]}`))
	})

	info, err := client.SymbolInfo(context.Background(), "AAPL", "NASDAQ")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "NASDAQ", info.Exchange)
}
