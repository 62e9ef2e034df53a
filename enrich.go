package scraper

import "context"

// Enrichment holds derived fields produced by an external NLP collaborator.
// Enrichment is merged non-destructively onto an Article; the base
// extraction is never modified by enrichment failure.
type Enrichment struct {
	Summary    string
	Keywords   []string
	IsFakeNews bool
	Confidence float64
}

// Enricher produces derived fields from an article's title and body.
// The pipeline tolerates a nil or failing Enricher: the article is returned
// without enrichment rather than failing the URL.
type Enricher interface {
	Enrich(ctx context.Context, article *Article) (*Enrichment, error)
}
