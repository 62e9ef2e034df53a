package scraper

import (
	"context"
	"time"
)

// Draft holds the raw output of a single extraction strategy before
// post-processing (language detection, URL normalization, logo backfill).
// Image and logo URLs may still be relative at this point.
type Draft struct {
	Title string

	// Body is the plain-text content. A draft with an empty trimmed Body is
	// treated as a failed attempt and the chain moves on.
	Body string

	// ContentHTML is the cleaned content markup when the strategy produces
	// one; used for optional markdown rendering.
	ContentHTML string

	// PublishedAt is set when the strategy parsed a date itself; DateRaw
	// carries an unparsed candidate string otherwise.
	PublishedAt *time.Time
	DateRaw     string

	// Language is a hint from document metadata, not a detection result.
	Language string

	ImageURLs []string
	LogoURL   string
}

// Strategy is one independent extraction algorithm. Strategies are tried in
// a fixed order until one succeeds; a strategy must be self-contained
// (fetching included, apart from the rendered strategy's shared browser) and
// must respect ctx for timeouts.
//
// Adding a strategy means appending to the chain, not modifying existing
// ones.
type Strategy interface {
	// Name returns the strategy identifier (e.g. "trafilatura", "rendered").
	Name() string

	// Extract attempts to produce a draft article from the URL. An error or
	// an empty-body draft both count as failure for chain purposes.
	Extract(ctx context.Context, url string) (*Draft, error)
}
