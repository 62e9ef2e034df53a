package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/ZOUBAIRELFADILI/scraper-service/mock"
	scraperslog "github.com/ZOUBAIRELFADILI/scraper-service/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingStrategy_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs strategy name, body length and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Strategy{
			NameFn: func() string { return "trafilatura" },
			ExtractFn: func(ctx context.Context, url string) (*scraper.Draft, error) {
				return &scraper.Draft{Title: "Title", Body: "1234567890"}, nil
			},
		}

		s := scraperslog.NewLoggingStrategy(inner, logger)
		draft, err := s.Extract(context.Background(), "https://example.com/news/one")

		require.NoError(t, err)
		assert.Equal(t, "Title", draft.Title)
		output := buf.String()
		assert.Contains(t, output, "extraction attempt")
		assert.Contains(t, output, "strategy=trafilatura")
		assert.Contains(t, output, "url=https://example.com/news/one")
		assert.Contains(t, output, "body_len=10")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Strategy{
			NameFn: func() string { return "density" },
			ExtractFn: func(ctx context.Context, url string) (*scraper.Draft, error) {
				return nil, scraper.Errorf(scraper.ENOTFOUND, "no content")
			},
		}

		s := scraperslog.NewLoggingStrategy(inner, logger)
		_, err := s.Extract(context.Background(), "https://example.com/news/one")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "strategy=density")
		assert.Contains(t, output, "no content")
	})
}

func TestLoggingStrategy_Name(t *testing.T) {
	t.Parallel()

	inner := &mock.Strategy{NameFn: func() string { return "rendered" }}
	s := scraperslog.NewLoggingStrategy(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	assert.Equal(t, "rendered", s.Name())
}
