package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// DefaultDocumentCacheTTL is how long a cached document body stays fresh.
// Filed documents are immutable once published, so the TTL mostly bounds
// table growth rather than staleness.
const DefaultDocumentCacheTTL = 7 * 24 * time.Hour

// CachedDocument is one row of the document cache.
type CachedDocument struct {
	URL        string
	HTTPStatus int
	Content    string
	FetchedAt  time.Time
}

// GetFreshDocument returns the cached body for a URL if it was fetched within
// ttl, or nil on a cache miss.
func (db *DB) GetFreshDocument(ctx context.Context, url string, ttl time.Duration) (*CachedDocument, error) {
	var doc CachedDocument
	err := db.pool.QueryRow(ctx,
		`SELECT url, http_status, content, fetched_at
		 FROM document_cache
		 WHERE url = $1 AND fetched_at > $2`,
		url, time.Now().Add(-ttl),
	).Scan(&doc.URL, &doc.HTTPStatus, &doc.Content, &doc.FetchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document cache: %w", err)
	}
	return &doc, nil
}

// SaveDocument upserts a downloaded document body, tagged with the run that
// fetched it.
func (db *DB) SaveDocument(ctx context.Context, url string, httpStatus int, content, runID string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO document_cache (url, http_status, content, run_id, fetched_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (url) DO UPDATE
		 SET http_status = $2, content = $3, run_id = $4, fetched_at = NOW()`,
		url, httpStatus, content, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", url, err)
	}
	return nil
}
