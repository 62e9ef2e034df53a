package rod

import (
	"context"
	"sync/atomic"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements scraper.Fetcher at compile time.
var _ scraper.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves fully rendered HTML through the shared browser. The
// pipeline uses it to render site homepages when an article page carries
// no logo of its own.
type Fetcher struct {
	manager *BrowserManager
	closed  atomic.Bool
}

// NewFetcher creates a Fetcher rendering pages through manager. The
// manager is owned by the caller and is not closed by Close.
func NewFetcher(manager *BrowserManager) *Fetcher {
	return &Fetcher{manager: manager}
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.closed.Load() || f.manager.Closed() {
		return "", scraper.Errorf(scraper.EINVALID, "fetcher is closed")
	}

	browser := f.manager.Browser()
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", scraper.Errorf(scraper.EUNAVAILABLE, "failed to open page: %v", err)
	}
	defer func() {
		page.Close()
		f.manager.IncrementPageCount()
	}()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", scraper.Errorf(scraper.EUNAVAILABLE, "failed to navigate to %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", scraper.Errorf(scraper.EUNAVAILABLE, "failed to load %s: %v", url, err)
	}
	_ = page.WaitDOMStable(domStablePoll, domStableDiff)

	html, err := page.HTML()
	if err != nil {
		return "", scraper.Errorf(scraper.EINTERNAL, "failed to read rendered HTML: %v", err)
	}
	return html, nil
}

// Close stops the fetcher from serving further requests. The shared
// browser manager stays open.
func (f *Fetcher) Close() error {
	f.closed.Store(true)
	return nil
}
