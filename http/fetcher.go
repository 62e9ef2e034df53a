// Package http provides an HTTP-based implementation of scraper.Fetcher for
// downloading raw page HTML without script execution, plus a lightweight
// favicon probe used for logo backfill.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// userAgent identifies the service to origin servers. Some news sites serve
// empty shells to unknown agents, so a browser-like string is used.
const userAgent = "Mozilla/5.0 (compatible; scraper-service/1.0; +https://github.com/ZOUBAIRELFADILI/scraper-service)"

// maxBodyBytes caps how much of a response is read. Pages larger than this
// are truncated rather than rejected.
const maxBodyBytes = 10 << 20

// Ensure Fetcher implements scraper.Fetcher at compile time.
var _ scraper.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// It does not execute JavaScript; pages that require rendering fall through
// to the rod-based strategy.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Non-2xx responses are returned as EUNAVAILABLE errors so the strategy
// chain can fall through to the next strategy.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", scraper.Errorf(scraper.EINVALID, "building request for %s: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", scraper.Errorf(scraper.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rawURL, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// FaviconURL probes the conventional favicon location for the URL's origin
// with a HEAD request. Returns the favicon URL when the server answers 2xx,
// or "" when it does not exist or the origin cannot be determined.
func (f *Fetcher) FaviconURL(ctx context.Context, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return ""
	}
	candidate := u.Scheme + "://" + u.Host + "/favicon.ico"

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, candidate, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return candidate
	}
	return ""
}
