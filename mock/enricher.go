package mock

import (
	"context"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
)

var _ scraper.Enricher = (*Enricher)(nil)

// Enricher is a mock implementation of scraper.Enricher.
type Enricher struct {
	EnrichFn func(ctx context.Context, article *scraper.Article) (*scraper.Enrichment, error)
}

func (e *Enricher) Enrich(ctx context.Context, article *scraper.Article) (*scraper.Enrichment, error) {
	return e.EnrichFn(ctx, article)
}
