package scraper

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations may use plain HTTP or browser automation for
// JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the page HTML. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// FaviconProber checks whether a site serves a favicon at the
// conventional /favicon.ico location. Used for logo backfill when a page
// declares no logo of its own.
type FaviconProber interface {
	// FaviconURL returns the favicon URL for the page's origin, or ""
	// when the site serves none.
	FaviconURL(ctx context.Context, pageURL string) string
}

// DomainLimiter throttles outbound requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before the wait
	// completes.
	Wait(ctx context.Context, domain string) error
}
