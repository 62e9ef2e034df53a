package slog

import (
	"context"
	"log/slog"
	"time"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
)

// Ensure LoggingArticleStore implements scraper.ArticleStore.
var _ scraper.ArticleStore = (*LoggingArticleStore)(nil)

// LoggingArticleStore wraps an ArticleStore with operation logging.
type LoggingArticleStore struct {
	next   scraper.ArticleStore
	logger *slog.Logger
}

// NewLoggingArticleStore creates a new LoggingArticleStore.
func NewLoggingArticleStore(next scraper.ArticleStore, logger *slog.Logger) *LoggingArticleStore {
	return &LoggingArticleStore{next: next, logger: logger}
}

// UpsertArticle delegates to the wrapped store and logs the operation.
func (s *LoggingArticleStore) UpsertArticle(ctx context.Context, article *scraper.Article) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("article upsert",
			"url", article.URL,
			"id", article.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertArticle(ctx, article)
}

// FindArticles delegates to the wrapped store and logs the operation.
func (s *LoggingArticleStore) FindArticles(ctx context.Context, filter scraper.ArticleFilter) (articles []*scraper.Article, total int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("article search",
			"query", filter.Query,
			"count", len(articles),
			"total", total,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticles(ctx, filter)
}
