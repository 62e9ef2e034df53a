package goquery

import (
	"context"
	"regexp"
	"strings"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/ZOUBAIRELFADILI/scraper-service/urlnorm"
	"github.com/PuerkitoBio/goquery"
)

// articlePathSegments are path markers that suggest a link points at an
// article rather than a section front or utility page.
var articlePathSegments = []string{
	"/article/", "/articles/",
	"/story/", "/stories/",
	"/news/",
	"/blog/",
	"/opinion/",
	"/post/", "/posts/",
}

var (
	// yearMonthPattern matches /YYYY/MM/ date-shaped path segments.
	yearMonthPattern = regexp.MustCompile(`/20\d{2}/\d{1,2}/`)

	// trailingNumericPattern matches a purely numeric final path segment,
	// a common article-ID convention.
	trailingNumericPattern = regexp.MustCompile(`/\d+/?$`)
)

// Ensure AnchorSource implements scraper.LinkSource at compile time.
var _ scraper.LinkSource = (*AnchorSource)(nil)

// AnchorSource discovers candidate article links by scanning every anchor
// on the page and applying path-pattern heuristics. It is the secondary
// listing signal, used when no declared feed yields articles.
type AnchorSource struct{}

// NewAnchorSource creates a new AnchorSource.
func NewAnchorSource() *AnchorSource {
	return &AnchorSource{}
}

// DiscoverArticleLinks scans anchors, resolves each href against the page
// URL, and keeps the ones that look like article links. Results are
// deduplicated by normalized URL and capped at
// scraper.MaxArticlesPerListing; the page URL itself is never a candidate.
func (a *AnchorSource) DiscoverArticleLinks(ctx context.Context, pageURL, rawHTML string) ([]scraper.CandidateLink, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, scraper.Errorf(scraper.EINVALID, "failed to parse HTML: %v", err)
	}

	self, err := urlnorm.Normalize(pageURL)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{self: {}}
	var links []scraper.CandidateLink

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(strings.ToLower(href), "javascript:") || strings.HasPrefix(strings.ToLower(href), "mailto:") {
			return true
		}

		resolved, err := urlnorm.Resolve(pageURL, href)
		if err != nil {
			return true
		}
		if _, ok := seen[resolved]; ok {
			return true
		}
		if !LooksLikeArticleURL(resolved) {
			return true
		}

		seen[resolved] = struct{}{}
		links = append(links, scraper.CandidateLink{URL: resolved, LikelyArticle: true})
		return len(links) < scraper.MaxArticlesPerListing
	})

	return links, nil
}

// LooksLikeArticleURL applies the path-pattern heuristics used to classify
// harvested links.
func LooksLikeArticleURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)

	// Strip scheme and query to examine the path portion only.
	path := lower
	if idx := strings.Index(path, "://"); idx != -1 {
		path = path[idx+3:]
	}
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if idx := strings.IndexByte(path, '/'); idx != -1 {
		path = path[idx:]
	} else {
		return false
	}

	for _, seg := range articlePathSegments {
		if strings.Contains(path, seg) {
			return true
		}
	}
	if strings.HasSuffix(path, ".html") || strings.HasSuffix(path, ".htm") {
		return true
	}
	if yearMonthPattern.MatchString(path) {
		return true
	}
	if trailingNumericPattern.MatchString(path) && path != "/" {
		return true
	}
	return false
}
