package trafilatura_test

import (
	"context"
	"strings"
	"testing"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/ZOUBAIRELFADILI/scraper-service/mock"
	"github.com/ZOUBAIRELFADILI/scraper-service/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Strategy implements scraper.Strategy at compile time.
var _ scraper.Strategy = (*trafilatura.Strategy)(nil)

const articleHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Markets Rally After Rate Decision - Example News</title>
<meta property="og:title" content="Markets Rally After Rate Decision">
<meta property="article:published_time" content="2023-01-15T10:30:00Z">
<meta property="og:image" content="https://example.com/img/rally.jpg">
</head>
<body>
<nav><a href="/">Home</a><a href="/markets">Markets</a></nav>
<article>
<h1>Markets Rally After Rate Decision</h1>
<p>Stock markets climbed sharply on Monday after the central bank announced
it would hold interest rates steady for the remainder of the quarter.</p>
<p>Analysts said the decision removed a major source of uncertainty that had
weighed on equities since the start of the year, and several large banks
revised their forecasts upward within hours of the announcement.</p>
</article>
<footer>Copyright 2023 Example News</footer>
</body>
</html>`

func TestStrategy_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title, body and metadata", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return articleHTML, nil
			},
			CloseFn: func() error { return nil },
		}

		s := trafilatura.NewStrategy(fetcher)
		draft, err := s.Extract(context.Background(), "https://example.com/news/rally")

		require.NoError(t, err)
		assert.Contains(t, draft.Title, "Markets Rally")
		assert.Contains(t, draft.Body, "interest rates steady")
		require.NotNil(t, draft.PublishedAt)
		assert.Equal(t, "2023-01-15", draft.PublishedAt.Format("2006-01-02"))
	})

	t.Run("propagates fetch failure", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", scraper.Errorf(scraper.EUNAVAILABLE, "HTTP 503 for %s", url)
			},
			CloseFn: func() error { return nil },
		}

		s := trafilatura.NewStrategy(fetcher)
		_, err := s.Extract(context.Background(), "https://example.com/down")

		require.Error(t, err)
		assert.Equal(t, scraper.EUNAVAILABLE, scraper.ErrorCode(err))
	})

	t.Run("strips navigation boilerplate", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return articleHTML, nil
			},
			CloseFn: func() error { return nil },
		}

		s := trafilatura.NewStrategy(fetcher)
		draft, err := s.Extract(context.Background(), "https://example.com/news/rally")

		require.NoError(t, err)
		assert.False(t, strings.Contains(draft.Body, "Home"), "nav links should be stripped")
	})
}
