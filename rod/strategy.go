package rod

import (
	"context"
	"strings"
	"time"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// domStablePoll and domStableDiff tune the DOM-stability wait after load.
// Rendering proceeds with whatever DOM is present when the wait does not
// converge within the page context's deadline.
const (
	domStablePoll = 300 * time.Millisecond
	domStableDiff = 0.1
)

// bodyJS walks content selectors in priority order and returns the visible
// text of the first match, falling back to the whole body.
const bodyJS = `() => {
	const selectors = [
		'article',
		'[role="article"]',
		'.post-content',
		'.article-content',
		'.entry-content',
		'.content',
		'main'
	];
	for (const selector of selectors) {
		const element = document.querySelector(selector);
		if (element) {
			return element.innerText;
		}
	}
	return document.body ? document.body.innerText : '';
}`

// imagesJS collects the sources of images large enough to be content
// rather than icons or tracking pixels.
const imagesJS = `() => {
	const images = Array.from(document.querySelectorAll('img'));
	return images
		.filter(img => img.src && img.width > 100 && img.height > 100)
		.map(img => img.src);
}`

// dateJS probes date metadata and time elements, returning the first raw
// candidate string.
const dateJS = `() => {
	const metaSelectors = [
		'meta[property="article:published_time"]',
		'meta[name="publication_date"]',
		'meta[name="date"]',
		'meta[name="pubdate"]'
	];
	for (const selector of metaSelectors) {
		const element = document.querySelector(selector);
		if (element && element.content) {
			return element.content;
		}
	}
	for (const time of Array.from(document.querySelectorAll('time'))) {
		if (time.dateTime) {
			return time.dateTime;
		}
	}
	return '';
}`

// logoJS probes icon links first, then social preview images.
const logoJS = `() => {
	const linkSelectors = [
		'link[rel="icon"]',
		'link[rel="shortcut icon"]',
		'link[rel="apple-touch-icon"]'
	];
	for (const selector of linkSelectors) {
		const element = document.querySelector(selector);
		if (element && element.href) {
			return element.href;
		}
	}
	const metaSelectors = [
		'meta[property="og:image"]',
		'meta[name="twitter:image"]'
	];
	for (const selector of metaSelectors) {
		const element = document.querySelector(selector);
		if (element && element.content) {
			return element.content;
		}
	}
	return '';
}`

// Ensure Strategy implements scraper.Strategy at compile time.
var _ scraper.Strategy = (*Strategy)(nil)

// Strategy extracts articles from a fully rendered DOM. It navigates with
// a real browser, waits for the page's scripts to settle, and reads the
// content out of the live document.
type Strategy struct {
	manager *BrowserManager
}

// NewStrategy creates a Strategy rendering pages through manager. The
// manager is owned by the caller.
func NewStrategy(manager *BrowserManager) *Strategy {
	return &Strategy{manager: manager}
}

// Name returns the strategy identifier.
func (s *Strategy) Name() string { return "rendered" }

// Extract renders the page and reads title, body text, images, a raw date
// candidate and a logo out of the live DOM. The date is left unparsed in
// DateRaw for the post-processing stage.
func (s *Strategy) Extract(ctx context.Context, url string) (*scraper.Draft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.manager.Closed() {
		return nil, scraper.Errorf(scraper.EINVALID, "browser manager is closed")
	}

	browser := s.manager.Browser()
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, scraper.Errorf(scraper.EUNAVAILABLE, "failed to open page: %v", err)
	}
	defer func() {
		page.Close()
		s.manager.IncrementPageCount()
	}()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, scraper.Errorf(scraper.EUNAVAILABLE, "failed to navigate to %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, scraper.Errorf(scraper.EUNAVAILABLE, "failed to load %s: %v", url, err)
	}
	_ = page.WaitDOMStable(domStablePoll, domStableDiff)

	draft := &scraper.Draft{
		Title:     evalString(page, `() => document.title`),
		Body:      strings.TrimSpace(evalString(page, bodyJS)),
		DateRaw:   evalString(page, dateJS),
		ImageURLs: evalStrings(page, imagesJS),
		LogoURL:   evalString(page, logoJS),
	}
	if lang := evalString(page, `() => document.documentElement.lang || ''`); lang != "" {
		if idx := strings.Index(lang, "-"); idx != -1 {
			lang = lang[:idx]
		}
		draft.Language = strings.ToLower(lang)
	}

	return draft, nil
}

// evalString evaluates a JS expression and returns its string result,
// swallowing errors so optional metadata never fails an extraction.
func evalString(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// evalStrings evaluates a JS expression returning an array of strings.
func evalStrings(page *rod.Page, js string) []string {
	res, err := page.Eval(js)
	if err != nil {
		return nil
	}
	var out []string
	for _, v := range res.Value.Arr() {
		if s := v.Str(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
