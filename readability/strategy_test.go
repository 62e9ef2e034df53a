package readability_test

import (
	"context"
	"testing"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/ZOUBAIRELFADILI/scraper-service/mock"
	"github.com/ZOUBAIRELFADILI/scraper-service/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Strategy implements scraper.Strategy at compile time.
var _ scraper.Strategy = (*readability.Strategy)(nil)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
<title>City Council Approves New Transit Plan</title>
<meta property="article:published_time" content="2023-03-02T08:00:00Z">
</head>
<body>
<header><nav><a href="/">Home</a></nav></header>
<article>
<h1>City Council Approves New Transit Plan</h1>
<p>The city council voted on Tuesday to approve a sweeping new transit plan
that will add three bus rapid transit corridors over the next five years.</p>
<p>Supporters of the plan argued it would cut commute times for tens of
thousands of residents, while opponents raised concerns about construction
disruption along the affected streets during the rollout period.</p>
</article>
<footer>About | Contact | Privacy</footer>
</body>
</html>`

func TestStrategy_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts readable content", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return articleHTML, nil
			},
			CloseFn: func() error { return nil },
		}

		s := readability.NewStrategy(fetcher)
		draft, err := s.Extract(context.Background(), "https://example.com/news/transit")

		require.NoError(t, err)
		assert.Contains(t, draft.Title, "Transit Plan")
		assert.Contains(t, draft.Body, "bus rapid transit corridors")
		assert.NotEmpty(t, draft.ContentHTML)
	})

	t.Run("propagates fetch failure", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", scraper.Errorf(scraper.EUNAVAILABLE, "HTTP 404 for %s", url)
			},
			CloseFn: func() error { return nil },
		}

		s := readability.NewStrategy(fetcher)
		_, err := s.Extract(context.Background(), "https://example.com/missing")

		require.Error(t, err)
		assert.Equal(t, scraper.EUNAVAILABLE, scraper.ErrorCode(err))
	})
}
