// Package scanner cross-references filing documents against the dividend
// keyword and keeps only the filings that mention it.
package scanner

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jonathan/dividend-extractor/internal/fetch"
	"github.com/jonathan/dividend-extractor/internal/twelvedata"
	"github.com/jonathan/dividend-extractor/internal/types"
)

// Keyword is the case-insensitive substring a document must contain to count
// as a dividend disclosure.
const Keyword = "dividend"

// ContentFetcher retrieves the raw body of a document URL. Satisfied by
// fetch.Fetcher and fetch.CachedFetcher.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Result, error)
}

// Scanner filters filings down to the ones whose documents mention the keyword.
type Scanner struct {
	fetcher ContentFetcher
	debug   bool
}

// New creates a Scanner.
func New(fetcher ContentFetcher, debug bool) *Scanner {
	return &Scanner{fetcher: fetcher, debug: debug}
}

// Scan walks the filings for one symbol and returns those with at least one
// HTML document containing the keyword, retaining only the matched documents.
// A download or read failure on one document is treated as no-match. Only a
// cancelled context aborts the scan.
func (s *Scanner) Scan(ctx context.Context, filings []twelvedata.ArchiveFiling) ([]types.Filing, error) {
	var kept []types.Filing
	for _, filing := range filings {
		if len(filing.Files) == 0 {
			continue
		}

		var matched []types.FilingDocument
		for _, file := range filing.Files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if !IsHTMLDocument(file.URL) {
				continue
			}
			docURL := NormalizeDocumentURL(file.URL)

			result, err := s.fetcher.Fetch(ctx, docURL)
			if err != nil {
				log.Printf("Warning: failed to download %s: %v", docURL, err)
				continue
			}
			if !MatchesKeyword(result.Body) {
				continue
			}
			if s.debug {
				log.Printf("[DEBUG] scanner: %q matched in %s (%s)", Keyword, docURL, fetch.Title(result.Body))
			}
			matched = append(matched, types.FilingDocument{URL: docURL, Type: file.Type})
		}

		// A filing with no matched documents is dropped entirely.
		if len(matched) == 0 {
			continue
		}
		kept = append(kept, types.Filing{
			URL:     filing.FilingURL,
			FiledAt: FormatFiledAt(filing.FiledAt),
			Files:   matched,
		})
	}
	return kept, nil
}

// IsHTMLDocument reports whether a document URL ends in .htm or .html.
// Anything else is never downloaded.
func IsHTMLDocument(url string) bool {
	return strings.HasSuffix(url, ".htm") || strings.HasSuffix(url, ".html")
}

// NormalizeDocumentURL strips EDGAR's inline-XBRL viewer path segment so the
// raw document is fetched instead of the viewer shell.
func NormalizeDocumentURL(url string) string {
	return strings.Replace(url, "/ix?doc=/Archives", "/Archives", 1)
}

// MatchesKeyword reports whether the document body contains the keyword,
// case-insensitively.
func MatchesKeyword(body string) bool {
	return strings.Contains(strings.ToLower(body), Keyword)
}

// FormatFiledAt renders a unix-seconds filing timestamp as YYYY-MM-DD, or ""
// when unset.
func FormatFiledAt(unixSeconds int64) string {
	if unixSeconds == 0 {
		return ""
	}
	return time.Unix(unixSeconds, 0).UTC().Format("2006-01-02")
}
