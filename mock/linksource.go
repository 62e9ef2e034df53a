package mock

import (
	"context"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
)

var _ scraper.LinkSource = (*LinkSource)(nil)

// LinkSource is a mock implementation of scraper.LinkSource.
type LinkSource struct {
	DiscoverArticleLinksFn func(ctx context.Context, pageURL, html string) ([]scraper.CandidateLink, error)
}

func (l *LinkSource) DiscoverArticleLinks(ctx context.Context, pageURL, html string) ([]scraper.CandidateLink, error) {
	return l.DiscoverArticleLinksFn(ctx, pageURL, html)
}
