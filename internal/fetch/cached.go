package fetch

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/dividend-extractor/internal/db"
)

// DocumentStore is the cache persistence the fetcher needs. Satisfied by
// db.DB; tests use an in-memory implementation.
type DocumentStore interface {
	GetFreshDocument(ctx context.Context, url string, ttl time.Duration) (*db.CachedDocument, error)
	SaveDocument(ctx context.Context, url string, httpStatus int, content, runID string) error
}

// CachedFetcher wraps a Fetcher with database-backed caching of document
// bodies. Cache hits skip both the network and the rate-limit delay.
type CachedFetcher struct {
	inner *Fetcher
	store DocumentStore
	ttl   time.Duration
	runID string
	debug bool
}

// NewCachedFetcher creates a cached fetcher. A zero ttl uses
// db.DefaultDocumentCacheTTL.
func NewCachedFetcher(inner *Fetcher, store DocumentStore, ttl time.Duration, runID string, debug bool) *CachedFetcher {
	if ttl == 0 {
		ttl = db.DefaultDocumentCacheTTL
	}
	return &CachedFetcher{inner: inner, store: store, ttl: ttl, runID: runID, debug: debug}
}

// Fetch returns the cached body when fresh, otherwise downloads through the
// inner fetcher and stores the result. Cache write failures are logged and
// do not fail the fetch.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	cached, err := f.store.GetFreshDocument(ctx, urlStr, f.ttl)
	if err != nil {
		log.Printf("Warning: document cache lookup failed for %s: %v", urlStr, err)
	} else if cached != nil {
		if f.debug {
			log.Printf("[DEBUG] fetch: cache hit for %s (fetched %s)", urlStr, cached.FetchedAt.Format(time.RFC3339))
		}
		return &Result{URL: cached.URL, Body: cached.Content, StatusCode: cached.HTTPStatus}, nil
	}

	result, err := f.inner.Fetch(ctx, urlStr)
	if err != nil {
		return result, err
	}

	if saveErr := f.store.SaveDocument(ctx, urlStr, result.StatusCode, result.Body, f.runID); saveErr != nil {
		log.Printf("Warning: failed to cache document %s: %v", urlStr, saveErr)
	}
	return result, nil
}
