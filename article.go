package scraper

import "time"

// Article represents a single extracted article. One Article is produced per
// successfully processed URL; enrichment and storage stages may decorate it
// further but never remove the base extraction fields.
type Article struct {
	// Deterministic identifier derived from the canonical URL. Assigned by
	// the persistence layer so repeated scrapes of the same URL upsert.
	ID string `json:"id,omitempty"`

	// Canonical URL actually fetched and the registrable domain it came from.
	URL          string `json:"url"`
	SourceDomain string `json:"sourceDomain"`

	Title string `json:"title"`

	// Body is the plain-text article content. Non-empty on every successful
	// extraction.
	Body string `json:"body"`

	// Markdown is an optional rendering of the extracted content HTML,
	// populated when the pipeline is configured to keep it.
	Markdown string `json:"markdown,omitempty"`

	// Language is an ISO 639-1 code. Defaults to DefaultLanguage when no
	// detector produces a reliable answer.
	Language string `json:"language"`

	// PublishedAt is nil when no publication date could be parsed.
	PublishedAt *time.Time `json:"publishedAt,omitempty"`

	// ImageURLs are absolute, tracking-parameter-stripped and deduplicated,
	// in discovery order. LogoURL follows the same rules when present.
	ImageURLs []string `json:"imageUrls,omitempty"`
	LogoURL   string   `json:"logoUrl,omitempty"`

	ScrapedAt time.Time `json:"scrapedAt"`

	// Enrichment fields, absent unless an Enricher ran successfully.
	Summary    string   `json:"summary,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	IsFakeNews *bool    `json:"isFakeNews,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Validate returns an error if the article is missing required fields.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	if a.Body == "" {
		return Errorf(EINVALID, "article body required")
	}
	if a.SourceDomain == "" {
		return Errorf(EINVALID, "article source domain required")
	}
	return nil
}

// ScrapeError reports a single URL that could not be processed. Every input
// URL in a batch yields exactly one Article or one ScrapeError, never both.
type ScrapeError struct {
	URL     string `json:"url"`
	Message string `json:"error"`

	// Trace carries optional diagnostic detail (wrapped error chains).
	Trace string `json:"trace,omitempty"`
}

// BatchResult is the aggregate outcome of processing a batch of seed URLs.
// Ordering of Articles and Errors relative to the input is not guaranteed;
// correlate by URL.
type BatchResult struct {
	Articles []*Article    `json:"articles"`
	Errors   []ScrapeError `json:"errors"`
}
