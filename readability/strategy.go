// Package readability implements the second extraction strategy: an
// independently-tuned readable-document heuristic wrapping go-readability.
// It catches sites where trafilatura's scoring assumptions fail.
package readability

import (
	"context"
	"net/url"
	"strings"
	"time"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	readability "github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-htmldate"
)

// Ensure Strategy implements scraper.Strategy at compile time.
var _ scraper.Strategy = (*Strategy)(nil)

// Strategy extracts articles using go-readability over raw HTML.
type Strategy struct {
	fetcher scraper.Fetcher
}

// NewStrategy creates a new Strategy that downloads pages with fetcher.
func NewStrategy(fetcher scraper.Fetcher) *Strategy {
	return &Strategy{fetcher: fetcher}
}

// Name returns the strategy identifier.
func (s *Strategy) Name() string { return "readability" }

// Extract downloads the page and runs readability extraction. Readability
// itself rarely finds publication dates, so the raw HTML is additionally
// scanned with htmldate when the article reports none.
func (s *Strategy) Extract(ctx context.Context, rawURL string) (*scraper.Draft, error) {
	rawHTML, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, scraper.Errorf(scraper.EINVALID, "unparseable URL %q", rawURL)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		return nil, err
	}

	draft := &scraper.Draft{
		Title:       article.Title,
		Body:        article.TextContent,
		ContentHTML: article.Content,
		Language:    article.Language,
		LogoURL:     article.Favicon,
	}
	if article.Image != "" {
		draft.ImageURLs = append(draft.ImageURLs, article.Image)
	}
	if article.PublishedTime != nil {
		draft.PublishedAt = article.PublishedTime
	} else if t := dateFromHTML(rawURL, rawHTML); t != nil {
		draft.PublishedAt = t
	}

	return draft, nil
}

// dateFromHTML scans raw HTML for a publication date using htmldate.
// Returns nil when no date is found.
func dateFromHTML(rawURL, rawHTML string) *time.Time {
	res, err := htmldate.FromReader(strings.NewReader(rawHTML), htmldate.Options{
		URL:             rawURL,
		UseOriginalDate: true,
	})
	if err != nil || res.IsZero() {
		return nil
	}
	t := res.DateTime
	return &t
}
