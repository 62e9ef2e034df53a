package mock

import (
	"context"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
)

var _ scraper.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of scraper.Strategy.
type Strategy struct {
	NameFn    func() string
	ExtractFn func(ctx context.Context, url string) (*scraper.Draft, error)
}

func (s *Strategy) Name() string {
	return s.NameFn()
}

func (s *Strategy) Extract(ctx context.Context, url string) (*scraper.Draft, error) {
	return s.ExtractFn(ctx, url)
}
