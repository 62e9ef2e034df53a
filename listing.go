package scraper

import "context"

// MaxArticlesPerListing caps how many article links are harvested from a
// single listing page, bounding fan-out cost.
const MaxArticlesPerListing = 10

// CandidateLink is a harvested link from a listing page. Candidates are
// transient: consumed immediately by the fan-out stage, never persisted.
type CandidateLink struct {
	// Absolute, normalized URL.
	URL string

	// LikelyArticle reports whether the link matched article-shaped path
	// heuristics (vs. being taken on the authority of a declared feed).
	LikelyArticle bool
}

// LinkSource discovers candidate article links on a fetched page. A page
// yielding more than one distinct candidate is a listing page; zero or one
// means the page is treated as a single article.
//
// Implementations receive the page HTML that was already fetched for
// classification; they must not follow links beyond the page itself.
type LinkSource interface {
	// DiscoverArticleLinks returns candidate links found on the page.
	// pageURL is the canonical URL of the fetched page, used to resolve
	// relative references.
	DiscoverArticleLinks(ctx context.Context, pageURL, html string) ([]CandidateLink, error)
}
