package mock

import (
	"context"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
)

var _ scraper.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of scraper.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
