// Package twelvedata provides a client for the Twelve Data REST API: symbol
// lookup, EDGAR filing archives, and the dividends calendar.
package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the production Twelve Data API endpoint.
const DefaultBaseURL = "https://api.twelvedata.com"

// DefaultTimeout is the per-request timeout for API calls.
const DefaultTimeout = 30 * time.Second

// Error represents a failure talking to the Twelve Data API.
type Error struct {
	Endpoint string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("twelvedata error for %s: %s: %v", e.Endpoint, e.Message, e.Cause)
	}
	return fmt.Sprintf("twelvedata error for %s: %s", e.Endpoint, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL string        // Defaults to DefaultBaseURL
	APIKey  string        // Required
	Timeout time.Duration // Defaults to DefaultTimeout
	Debug   bool          // Log request latency and response shape
}

// Client issues authenticated GET requests against the Twelve Data API. All
// higher-level fetchers are built on Get.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	debug   bool
}

// NewClient creates a Client. The API key is required; everything else has
// defaults.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("twelvedata: API key is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		httpc:   &http.Client{Timeout: opts.Timeout},
		debug:   opts.Debug,
	}, nil
}

// apiStatus is the error envelope Twelve Data returns with HTTP 200 when a
// request is rejected (bad symbol, exhausted quota, etc.).
type apiStatus struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Get issues a GET against endpoint with the given query parameters, appending
// the API key, and returns the raw JSON payload. The key is never logged.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{Endpoint: endpoint, Message: "failed to create request", Cause: err}
	}

	if c.debug {
		log.Printf("[DEBUG] twelvedata: GET %s params=%v", endpoint, params)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &Error{Endpoint: endpoint, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Endpoint: endpoint, Message: "failed to read response body", Cause: err}
	}

	if c.debug {
		log.Printf("[DEBUG] twelvedata: %s responded %d in %s (%d bytes)",
			endpoint, resp.StatusCode, time.Since(start).Round(time.Millisecond), len(body))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Endpoint: endpoint, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	var payload json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &Error{Endpoint: endpoint, Message: "failed to decode JSON response", Cause: err}
	}

	// The API signals request-level errors inside a 200 response.
	var status apiStatus
	if err := json.Unmarshal(payload, &status); err == nil && status.Status == "error" {
		return nil, &Error{Endpoint: endpoint, Message: fmt.Sprintf("API error %d: %s", status.Code, status.Message)}
	}

	return payload, nil
}
