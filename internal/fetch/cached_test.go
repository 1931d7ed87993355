package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/dividend-extractor/internal/db"
)

// memoryStore is an in-memory DocumentStore for tests.
type memoryStore struct {
	docs    map[string]*db.CachedDocument
	saveErr error
	getErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: map[string]*db.CachedDocument{}}
}

func (m *memoryStore) GetFreshDocument(_ context.Context, url string, ttl time.Duration) (*db.CachedDocument, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	doc, ok := m.docs[url]
	if !ok || time.Since(doc.FetchedAt) > ttl {
		return nil, nil
	}
	return doc, nil
}

func (m *memoryStore) SaveDocument(_ context.Context, url string, httpStatus int, content, _ string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.docs[url] = &db.CachedDocument{URL: url, HTTPStatus: httpStatus, Content: content, FetchedAt: time.Now()}
	return nil
}

func newCountingServer(t *testing.T, body string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestCachedFetcher_SecondFetchHitsCache(t *testing.T) {
	server, hits := newCountingServer(t, "dividend text")
	store := newMemoryStore()
	f := NewCachedFetcher(NewFetcher(StaticIdentity("test"), nil, 0, false), store, 0, "run-1", false)

	first, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	second, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, int64(1), hits.Load())
	assert.Equal(t, first.Body, second.Body)
}

func TestCachedFetcher_ExpiredEntryRefetches(t *testing.T) {
	server, hits := newCountingServer(t, "dividend text")
	store := newMemoryStore()
	store.docs[server.URL] = &db.CachedDocument{
		URL:       server.URL,
		Content:   "stale",
		FetchedAt: time.Now().Add(-48 * time.Hour),
	}
	f := NewCachedFetcher(NewFetcher(StaticIdentity("test"), nil, 0, false), store, time.Hour, "run-1", false)

	result, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "dividend text", result.Body)
	assert.Equal(t, int64(1), hits.Load())
}

func TestCachedFetcher_StoreFailuresDoNotFailFetch(t *testing.T) {
	server, _ := newCountingServer(t, "dividend text")
	store := newMemoryStore()
	store.getErr = assert.AnError
	store.saveErr = assert.AnError
	f := NewCachedFetcher(NewFetcher(StaticIdentity("test"), nil, 0, false), store, 0, "run-1", false)

	result, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "dividend text", result.Body)
}

func TestCachedFetcher_FetchErrorNotCached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	store := newMemoryStore()
	f := NewCachedFetcher(NewFetcher(StaticIdentity("test"), nil, 0, false), store, 0, "run-1", false)

	_, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Empty(t, store.docs)
}
