package mock

import (
	"context"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
)

var _ scraper.ArticleStore = (*ArticleStore)(nil)

// ArticleStore is a mock implementation of scraper.ArticleStore.
type ArticleStore struct {
	UpsertArticleFn func(ctx context.Context, article *scraper.Article) error
	FindArticlesFn  func(ctx context.Context, filter scraper.ArticleFilter) ([]*scraper.Article, int, error)
}

func (s *ArticleStore) UpsertArticle(ctx context.Context, article *scraper.Article) error {
	return s.UpsertArticleFn(ctx, article)
}

func (s *ArticleStore) FindArticles(ctx context.Context, filter scraper.ArticleFilter) ([]*scraper.Article, int, error) {
	return s.FindArticlesFn(ctx, filter)
}
