package twelvedata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientOptions{BaseURL: server.URL, APIKey: "test-key"})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(ClientOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestGet_AppendsAPIKey(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	_, err := client.Get(context.Background(), "stocks", map[string]string{"symbol": "AAPL"})
	require.NoError(t, err)
	assert.Equal(t, []string{"test-key"}, gotQuery["apikey"])
	assert.Equal(t, []string{"AAPL"}, gotQuery["symbol"])
}

func TestGet_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Get(context.Background(), "stocks", nil)
	require.Error(t, err)

	var apiErr *Error
	assert.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "429")
}

func TestGet_DecodeFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.Get(context.Background(), "stocks", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestGet_APIErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","code":401,"message":"invalid api key"}`))
	})

	_, err := client.Get(context.Background(), "stocks", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestGet_TransportError(t *testing.T) {
	client, err := NewClient(ClientOptions{BaseURL: "http://127.0.0.1:1", APIKey: "test-key"})
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "stocks", nil)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.NotNil(t, apiErr.Unwrap())
}
