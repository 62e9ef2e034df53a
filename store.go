package scraper

import "context"

// ArticleStore persists finalized articles.
// Upserts are idempotent: the store derives a stable identifier from the
// article's canonical URL, so re-scraping a URL updates in place.
type ArticleStore interface {
	// UpsertArticle inserts the article or updates the existing row for the
	// same canonical URL. Assigns article.ID.
	UpsertArticle(ctx context.Context, article *Article) error

	// FindArticles retrieves stored articles matching the filter, returning
	// the total match count for pagination.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, int, error)
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	// Query matches against title, body and keywords when non-empty.
	Query string

	// Domain restricts results to a single source domain.
	Domain *string

	Offset int
	Limit  int
}
