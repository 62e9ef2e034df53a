package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/cespare/xxhash/v2"
)

// Compile-time interface verification.
var _ scraper.ArticleStore = (*ArticleService)(nil)

// ArticleService implements scraper.ArticleStore using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// articleID computes the deterministic identifier for a canonical URL.
// The same URL always maps to the same ID, which is what makes upserts
// idempotent across scrape runs.
func articleID(url string) string {
	h := xxhash.Sum64String(url)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// UpsertArticle inserts the article or replaces the existing row for the
// same canonical URL. Assigns article.ID.
func (s *ArticleService) UpsertArticle(ctx context.Context, article *scraper.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	article.ID = articleID(article.URL)
	if article.ScrapedAt.IsZero() {
		article.ScrapedAt = time.Now().UTC()
	}

	imageURLs, err := json.Marshal(article.ImageURLs)
	if err != nil {
		return fmt.Errorf("failed to encode image URLs: %w", err)
	}
	keywords, err := json.Marshal(article.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}

	var publishedAt any
	if article.PublishedAt != nil {
		publishedAt = article.PublishedAt.UTC().Format(time.RFC3339)
	}
	var isFakeNews any
	if article.IsFakeNews != nil {
		isFakeNews = *article.IsFakeNews
	}
	var confidence any
	if article.Confidence != nil {
		confidence = *article.Confidence
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO articles (id, url, source_domain, title, body, markdown, language,
			published_at, image_urls, logo_url, scraped_at, summary, keywords,
			is_fake_news, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			source_domain = excluded.source_domain,
			title = excluded.title,
			body = excluded.body,
			markdown = excluded.markdown,
			language = excluded.language,
			published_at = excluded.published_at,
			image_urls = excluded.image_urls,
			logo_url = excluded.logo_url,
			scraped_at = excluded.scraped_at,
			summary = excluded.summary,
			keywords = excluded.keywords,
			is_fake_news = excluded.is_fake_news,
			confidence = excluded.confidence
	`, article.ID, article.URL, article.SourceDomain, article.Title, article.Body,
		article.Markdown, article.Language, publishedAt, string(imageURLs),
		article.LogoURL, article.ScrapedAt.UTC().Format(time.RFC3339),
		article.Summary, string(keywords), isFakeNews, confidence)

	return err
}

// FindArticles retrieves stored articles matching the filter, newest first,
// returning the total match count for pagination.
func (s *ArticleService) FindArticles(ctx context.Context, filter scraper.ArticleFilter) ([]*scraper.Article, int, error) {
	where, args := buildWhere(filter)

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM articles"+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, url, source_domain, title, body, markdown, language,
		published_at, image_urls, logo_url, scraped_at, summary, keywords,
		is_fake_news, confidence FROM articles` + where + " ORDER BY scraped_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		// OFFSET is only valid after a LIMIT clause; -1 means unlimited.
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var articles []*scraper.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// buildWhere assembles the WHERE clause shared by the count and page
// queries.
func buildWhere(filter scraper.ArticleFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Query != "" {
		conds = append(conds, "(title LIKE ? OR body LIKE ? OR keywords LIKE ?)")
		pattern := "%" + filter.Query + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.Domain != nil {
		conds = append(conds, "source_domain = ?")
		args = append(args, *filter.Domain)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanArticle(rows *sql.Rows) (*scraper.Article, error) {
	var article scraper.Article
	var publishedAt sql.NullString
	var scrapedAt, imageURLs, keywords string
	var isFakeNews sql.NullBool
	var confidence sql.NullFloat64

	if err := rows.Scan(&article.ID, &article.URL, &article.SourceDomain,
		&article.Title, &article.Body, &article.Markdown, &article.Language,
		&publishedAt, &imageURLs, &article.LogoURL, &scrapedAt,
		&article.Summary, &keywords, &isFakeNews, &confidence); err != nil {
		return nil, err
	}

	if publishedAt.Valid {
		t, err := time.Parse(time.RFC3339, publishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse published_at: %w", err)
		}
		article.PublishedAt = &t
	}
	var err error
	article.ScrapedAt, err = time.Parse(time.RFC3339, scrapedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scraped_at: %w", err)
	}
	if err := json.Unmarshal([]byte(imageURLs), &article.ImageURLs); err != nil {
		return nil, fmt.Errorf("failed to decode image URLs: %w", err)
	}
	if err := json.Unmarshal([]byte(keywords), &article.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords: %w", err)
	}
	if isFakeNews.Valid {
		v := isFakeNews.Bool
		article.IsFakeNews = &v
	}
	if confidence.Valid {
		v := confidence.Float64
		article.Confidence = &v
	}

	return &article, nil
}
