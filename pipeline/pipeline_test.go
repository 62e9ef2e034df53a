package pipeline_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/ZOUBAIRELFADILI/scraper-service/mock"
	"github.com/ZOUBAIRELFADILI/scraper-service/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticFetcher always returns the same HTML.
func staticFetcher(html string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
}

// noLinks classifies every page as a single article.
func noLinks() *mock.LinkSource {
	return &mock.LinkSource{
		DiscoverArticleLinksFn: func(ctx context.Context, pageURL, html string) ([]scraper.CandidateLink, error) {
			return nil, nil
		},
	}
}

// bodyStrategy extracts a fixed draft for any URL.
func bodyStrategy(body string) *mock.Strategy {
	return &mock.Strategy{
		NameFn: func() string { return "test" },
		ExtractFn: func(ctx context.Context, url string) (*scraper.Draft, error) {
			return &scraper.Draft{Title: "Title for " + url, Body: body}, nil
		},
	}
}

func englishDetector() *mock.LanguageDetector {
	return &mock.LanguageDetector{
		DetectFn: func(text string) (string, error) { return "en", nil },
	}
}

func basePipeline() *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Fetcher:     staticFetcher("<html><body>page</body></html>"),
		Strategies:  []scraper.Strategy{bodyStrategy("article body text")},
		Sources:     []scraper.LinkSource{noLinks()},
		Detectors:   []scraper.LanguageDetector{englishDetector()},
		Concurrency: 4,
		RetryDelays: []time.Duration{0},
	}
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("rejects an empty batch", func(t *testing.T) {
		t.Parallel()

		p := basePipeline()
		_, err := p.Run(context.Background(), nil)

		require.Error(t, err)
		assert.Equal(t, scraper.EINVALID, scraper.ErrorCode(err))
	})

	t.Run("single article page yields one article", func(t *testing.T) {
		t.Parallel()

		p := basePipeline()
		result, err := p.Run(context.Background(), []string{"https://example.com/news/one?utm_source=x"})

		require.NoError(t, err)
		assert.Empty(t, result.Errors)
		require.Len(t, result.Articles, 1)

		article := result.Articles[0]
		assert.Equal(t, "https://example.com/news/one", article.URL)
		assert.Equal(t, "example.com", article.SourceDomain)
		assert.Equal(t, "article body text", article.Body)
		assert.Equal(t, "en", article.Language)
		assert.False(t, article.ScrapedAt.IsZero())
	})

	t.Run("invalid URL yields one error entry", func(t *testing.T) {
		t.Parallel()

		p := basePipeline()
		result, err := p.Run(context.Background(), []string{"ftp://example.com/file"})

		require.NoError(t, err)
		assert.Empty(t, result.Articles)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "ftp://example.com/file", result.Errors[0].URL)
	})

	t.Run("duplicate URLs yield one article and one error", func(t *testing.T) {
		t.Parallel()

		p := basePipeline()
		result, err := p.Run(context.Background(), []string{
			"https://example.com/news/one",
			"https://example.com/news/one#comments",
		})

		require.NoError(t, err)
		assert.Len(t, result.Articles, 1)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0].Message, "duplicate")
	})

	t.Run("listing page fans out and yields no entry for itself", func(t *testing.T) {
		t.Parallel()

		p := basePipeline()
		p.Sources = []scraper.LinkSource{&mock.LinkSource{
			DiscoverArticleLinksFn: func(ctx context.Context, pageURL, html string) ([]scraper.CandidateLink, error) {
				return []scraper.CandidateLink{
					{URL: "https://example.com/news/one"},
					{URL: "https://example.com/news/two"},
					{URL: "https://example.com/news/three"},
				}, nil
			},
		}}

		result, err := p.Run(context.Background(), []string{"https://example.com/news"})

		require.NoError(t, err)
		assert.Empty(t, result.Errors)
		require.Len(t, result.Articles, 3)

		var urls []string
		for _, a := range result.Articles {
			urls = append(urls, a.URL)
		}
		sort.Strings(urls)
		assert.Equal(t, []string{
			"https://example.com/news/one",
			"https://example.com/news/three",
			"https://example.com/news/two",
		}, urls)
	})

	t.Run("harvested links are deduplicated across seeds", func(t *testing.T) {
		t.Parallel()

		p := basePipeline()
		p.Sources = []scraper.LinkSource{&mock.LinkSource{
			DiscoverArticleLinksFn: func(ctx context.Context, pageURL, html string) ([]scraper.CandidateLink, error) {
				return []scraper.CandidateLink{
					{URL: "https://example.com/news/one"},
					{URL: "https://example.com/news/two"},
				}, nil
			},
		}}

		result, err := p.Run(context.Background(), []string{
			"https://example.com/news",
			"https://example.com/politics",
		})

		require.NoError(t, err)
		assert.Empty(t, result.Errors)
		assert.Len(t, result.Articles, 2)
	})

	t.Run("exhausted chain yields one error entry per URL", func(t *testing.T) {
		t.Parallel()

		p := basePipeline()
		p.Strategies = []scraper.Strategy{&mock.Strategy{
			NameFn: func() string { return "failing" },
			ExtractFn: func(ctx context.Context, url string) (*scraper.Draft, error) {
				return nil, scraper.Errorf(scraper.EUNAVAILABLE, "HTTP 500")
			},
		}}

		result, err := p.Run(context.Background(), []string{"https://example.com/news/one"})

		require.NoError(t, err)
		assert.Empty(t, result.Articles)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "https://example.com/news/one", result.Errors[0].URL)
		assert.Contains(t, result.Errors[0].Message, "strategies failed")
	})

	t.Run("seed fetch failure yields one error entry", func(t *testing.T) {
		t.Parallel()

		p := basePipeline()
		p.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", scraper.Errorf(scraper.EUNAVAILABLE, "HTTP 503 for %s", url)
			},
			CloseFn: func() error { return nil },
		}

		result, err := p.Run(context.Background(), []string{"https://example.com/news"})

		require.NoError(t, err)
		assert.Empty(t, result.Articles)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0].Message, "fetch")
	})
}

func TestPipeline_Run_PostProcessing(t *testing.T) {
	t.Parallel()

	t.Run("resolves and normalizes image URLs", func(t *testing.T) {
		t.Parallel()

		p := basePipeline()
		p.Strategies = []scraper.Strategy{&mock.Strategy{
			NameFn: func() string { return "test" },
			ExtractFn: func(ctx context.Context, url string) (*scraper.Draft, error) {
				return &scraper.Draft{
					Title: "T",
					Body:  "body",
					ImageURLs: []string{
						"/img/a.jpg?utm_source=feed",
						"https://cdn.example.com/b.jpg",
						"/img/a.jpg",
					},
				}, nil
			},
		}}

		result, err := p.Run(context.Background(), []string{"https://example.com/news/one"})

		require.NoError(t, err)
		require.Len(t, result.Articles, 1)
		assert.Equal(t, []string{
			"https://example.com/img/a.jpg",
			"https://cdn.example.com/b.jpg",
		}, result.Articles[0].ImageURLs)
	})

	t.Run("parses raw date candidates", func(t *testing.T) {
		t.Parallel()

		p := basePipeline()
		p.Strategies = []scraper.Strategy{&mock.Strategy{
			NameFn: func() string { return "test" },
			ExtractFn: func(ctx context.Context, url string) (*scraper.Draft, error) {
				return &scraper.Draft{Title: "T", Body: "body", DateRaw: "2023-03-02T08:00:00Z"}, nil
			},
		}}

		result, err := p.Run(context.Background(), []string{"https://example.com/news/one"})

		require.NoError(t, err)
		require.Len(t, result.Articles, 1)
		require.NotNil(t, result.Articles[0].PublishedAt)
		assert.Equal(t, 2023, result.Articles[0].PublishedAt.Year())
	})

	t.Run("falls back through the detector chain to the default language", func(t *testing.T) {
		t.Parallel()

		p := basePipeline()
		p.Detectors = []scraper.LanguageDetector{
			&mock.LanguageDetector{DetectFn: func(text string) (string, error) {
				return "", scraper.Errorf(scraper.ENOTFOUND, "unreliable")
			}},
		}

		result, err := p.Run(context.Background(), []string{"https://example.com/news/one"})

		require.NoError(t, err)
		require.Len(t, result.Articles, 1)
		assert.Equal(t, scraper.DefaultLanguage, result.Articles[0].Language)
	})

	t.Run("renders markdown when a converter is configured", func(t *testing.T) {
		t.Parallel()

		p := basePipeline()
		p.Strategies = []scraper.Strategy{&mock.Strategy{
			NameFn: func() string { return "test" },
			ExtractFn: func(ctx context.Context, url string) (*scraper.Draft, error) {
				return &scraper.Draft{Title: "T", Body: "body", ContentHTML: "<p>body</p>"}, nil
			},
		}}
		p.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return strings.ReplaceAll(html, "<p>", "") + " as markdown", nil
			},
		}

		result, err := p.Run(context.Background(), []string{"https://example.com/news/one"})

		require.NoError(t, err)
		require.Len(t, result.Articles, 1)
		assert.Contains(t, result.Articles[0].Markdown, "as markdown")
	})

	t.Run("drops old articles but keeps undated ones", func(t *testing.T) {
		t.Parallel()

		old := time.Now().UTC().AddDate(-2, 0, 0)
		drafts := map[string]*scraper.Draft{
			"https://example.com/news/old":     {Title: "Old", Body: "body", PublishedAt: &old},
			"https://example.com/news/undated": {Title: "Undated", Body: "body"},
		}

		p := basePipeline()
		p.MaxAge = 180 * 24 * time.Hour
		p.KeepUndated = true
		p.Strategies = []scraper.Strategy{&mock.Strategy{
			NameFn: func() string { return "test" },
			ExtractFn: func(ctx context.Context, url string) (*scraper.Draft, error) {
				return drafts[url], nil
			},
		}}

		result, err := p.Run(context.Background(), []string{
			"https://example.com/news/old",
			"https://example.com/news/undated",
		})

		require.NoError(t, err)
		require.Len(t, result.Articles, 1)
		assert.Equal(t, "Undated", result.Articles[0].Title)
	})
}

func TestPipeline_Run_EnrichmentAndStorage(t *testing.T) {
	t.Parallel()

	t.Run("enrichment decorates the article", func(t *testing.T) {
		t.Parallel()

		p := basePipeline()
		p.Enricher = &mock.Enricher{
			EnrichFn: func(ctx context.Context, article *scraper.Article) (*scraper.Enrichment, error) {
				return &scraper.Enrichment{
					Summary:    "short summary",
					Keywords:   []string{"harbour"},
					IsFakeNews: false,
					Confidence: 0.9,
				}, nil
			},
		}

		result, err := p.Run(context.Background(), []string{"https://example.com/news/one"})

		require.NoError(t, err)
		require.Len(t, result.Articles, 1)

		article := result.Articles[0]
		assert.Equal(t, "short summary", article.Summary)
		assert.Equal(t, []string{"harbour"}, article.Keywords)
		require.NotNil(t, article.IsFakeNews)
		assert.False(t, *article.IsFakeNews)
		require.NotNil(t, article.Confidence)
		assert.InDelta(t, 0.9, *article.Confidence, 0.0001)
	})

	t.Run("enrichment failure keeps the base article", func(t *testing.T) {
		t.Parallel()

		p := basePipeline()
		p.Enricher = &mock.Enricher{
			EnrichFn: func(ctx context.Context, article *scraper.Article) (*scraper.Enrichment, error) {
				return nil, scraper.Errorf(scraper.EINTERNAL, "model unavailable")
			},
		}

		result, err := p.Run(context.Background(), []string{"https://example.com/news/one"})

		require.NoError(t, err)
		assert.Empty(t, result.Errors)
		require.Len(t, result.Articles, 1)
		assert.Empty(t, result.Articles[0].Summary)
		assert.Nil(t, result.Articles[0].IsFakeNews)
	})

	t.Run("articles are persisted when a store is configured", func(t *testing.T) {
		t.Parallel()

		var stored []string
		p := basePipeline()
		p.Store = &mock.ArticleStore{
			UpsertArticleFn: func(ctx context.Context, article *scraper.Article) error {
				stored = append(stored, article.URL)
				return nil
			},
		}

		result, err := p.Run(context.Background(), []string{"https://example.com/news/one"})

		require.NoError(t, err)
		require.Len(t, result.Articles, 1)
		assert.Equal(t, []string{"https://example.com/news/one"}, stored)
	})

	t.Run("store failure is reported but the article survives", func(t *testing.T) {
		t.Parallel()

		p := basePipeline()
		p.Store = &mock.ArticleStore{
			UpsertArticleFn: func(ctx context.Context, article *scraper.Article) error {
				return scraper.Errorf(scraper.EINTERNAL, "disk full")
			},
		}

		result, err := p.Run(context.Background(), []string{"https://example.com/news/one"})

		require.NoError(t, err)
		require.Len(t, result.Articles, 1)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0].Message, "store")
	})
}
