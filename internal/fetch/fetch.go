// Package fetch downloads filing documents over plain HTTP with a
// rate-limited, identity-bearing client.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the per-download HTTP timeout.
const DefaultTimeout = 30 * time.Second

// Result holds the content retrieved from a document URL.
type Result struct {
	URL         string
	Body        string
	ContentType string
	StatusCode  int
}

// Error represents an error during a document download.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Fetcher downloads documents for the filing scanner. The limiter is shared
// across however many workers are fetching, so outgoing requests keep the
// configured spacing regardless of concurrency; a nil limiter disables rate
// limiting (tests).
type Fetcher struct {
	identity IdentityProvider
	limiter  *rate.Limiter
	httpc    *http.Client
	debug    bool
}

// NewFetcher creates a Fetcher. A zero timeout uses DefaultTimeout.
func NewFetcher(identity IdentityProvider, limiter *rate.Limiter, timeout time.Duration, debug bool) *Fetcher {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		identity: identity,
		limiter:  limiter,
		httpc:    &http.Client{Timeout: timeout},
		debug:    debug,
	}
}

// Fetch retrieves a document URL. It blocks on the rate limiter before the
// request goes out and sends a freshly generated identifying User-Agent. The
// body is returned alongside the error on non-200 responses.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, &Error{URL: urlStr, Message: "rate limit wait cancelled", Cause: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.identity.UserAgent())

	start := time.Now()
	resp, err := f.httpc.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	if f.debug {
		log.Printf("[DEBUG] fetch: %s responded %d in %s (%d bytes)",
			urlStr, resp.StatusCode, time.Since(start).Round(time.Millisecond), len(body))
	}

	result := &Result{
		URL:         urlStr,
		Body:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return result, nil
}

// Title extracts the HTML <title> text from a document body. Used for debug
// logging only; returns "" when the document has no title.
func Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
