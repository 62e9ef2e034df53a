// Package gofeed implements listing detection through feeds declared on
// the page. A page advertising an RSS or Atom feed with multiple items is
// the strongest listing signal the engine has, so this source runs before
// anchor-scanning heuristics.
package gofeed

import (
	"context"
	"strings"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/ZOUBAIRELFADILI/scraper-service/urlnorm"
	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// feedLinkSelector matches feed declarations in the document head.
const feedLinkSelector = `link[rel="alternate"][type="application/rss+xml"], ` +
	`link[rel="alternate"][type="application/atom+xml"]`

// Ensure FeedSource implements scraper.LinkSource at compile time.
var _ scraper.LinkSource = (*FeedSource)(nil)

// FeedSource discovers article links by locating feeds declared on the
// page, downloading them, and harvesting their item URLs.
type FeedSource struct {
	fetcher scraper.Fetcher
	parser  *gofeed.Parser
}

// NewFeedSource creates a new FeedSource that downloads feeds with fetcher.
func NewFeedSource(fetcher scraper.Fetcher) *FeedSource {
	return &FeedSource{
		fetcher: fetcher,
		parser:  gofeed.NewParser(),
	}
}

// DiscoverArticleLinks returns the item URLs of the first declared feed
// that parses and yields at least one item. Item URLs are normalized,
// deduplicated, stripped of the page URL itself, and capped at
// scraper.MaxArticlesPerListing. A page without a usable feed yields no
// candidates rather than an error, so the caller can fall through to
// heuristic harvesting.
func (f *FeedSource) DiscoverArticleLinks(ctx context.Context, pageURL, rawHTML string) ([]scraper.CandidateLink, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, scraper.Errorf(scraper.EINVALID, "failed to parse HTML: %v", err)
	}

	self, err := urlnorm.Normalize(pageURL)
	if err != nil {
		return nil, err
	}

	var feedURLs []string
	doc.Find(feedLinkSelector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		if resolved, err := urlnorm.Resolve(pageURL, href); err == nil {
			feedURLs = append(feedURLs, resolved)
		}
	})

	for _, feedURL := range feedURLs {
		links := f.harvestFeed(ctx, feedURL, self)
		if len(links) > 0 {
			return links, nil
		}
	}
	return nil, nil
}

// harvestFeed downloads and parses a single feed. Failures are swallowed:
// a broken feed declaration must not fail the page.
func (f *FeedSource) harvestFeed(ctx context.Context, feedURL, self string) []scraper.CandidateLink {
	body, err := f.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil
	}

	feed, err := f.parser.Parse(strings.NewReader(body))
	if err != nil {
		return nil
	}

	seen := map[string]struct{}{self: {}}
	var links []scraper.CandidateLink
	for _, item := range feed.Items {
		if item == nil || item.Link == "" {
			continue
		}
		normalized, err := urlnorm.Resolve(feedURL, item.Link)
		if err != nil {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		links = append(links, scraper.CandidateLink{URL: normalized})
		if len(links) == scraper.MaxArticlesPerListing {
			break
		}
	}
	return links
}
