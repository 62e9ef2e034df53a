// Package goquery provides the generic text-density extraction strategy,
// anchor-based article link harvesting, and logo selection heuristics.
// These work on parsed DOM trees without a full content-extraction
// library.
package goquery

import (
	"context"
	"strings"
	"time"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-htmldate"
)

// MinBodyLength is the minimum rune count for a density-extracted body.
// Anything shorter is treated as noise rather than content.
const MinBodyLength = 200

// noiseSelector matches elements stripped before scoring.
const noiseSelector = "script, style, noscript, nav, header, footer, aside, form"

// candidateSelector matches containers considered as the main content root.
const candidateSelector = `article, main, [role="main"], ` +
	`[class*="content"], [id*="content"], ` +
	`[class*="post"], [id*="post"], ` +
	`[class*="article"], [id*="article"]`

// Ensure Strategy implements scraper.Strategy at compile time.
var _ scraper.Strategy = (*Strategy)(nil)

// Strategy is the generic text-density fallback extractor. It locates the
// candidate subtree with the most visible text and takes that as the
// article body, falling back to the whole document.
type Strategy struct {
	fetcher scraper.Fetcher
}

// NewStrategy creates a new Strategy that downloads pages with fetcher.
func NewStrategy(fetcher scraper.Fetcher) *Strategy {
	return &Strategy{fetcher: fetcher}
}

// Name returns the strategy identifier.
func (s *Strategy) Name() string { return "density" }

// Extract downloads the page and applies text-density extraction.
func (s *Strategy) Extract(ctx context.Context, rawURL string) (*scraper.Draft, error) {
	rawHTML, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, scraper.Errorf(scraper.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(noiseSelector).Remove()

	container := selectDensest(doc)
	body := cleanText(container.Text())
	if len([]rune(body)) < MinBodyLength {
		return nil, scraper.Errorf(scraper.ENOTFOUND, "densest subtree below %d runes, treating as noise", MinBodyLength)
	}

	draft := &scraper.Draft{
		Title:     extractTitle(doc),
		Body:      body,
		ImageURLs: extractImages(container),
	}
	if html, err := container.Html(); err == nil {
		draft.ContentHTML = html
	}
	if lang, ok := doc.Find("html").Attr("lang"); ok {
		if idx := strings.Index(lang, "-"); idx != -1 {
			lang = lang[:idx]
		}
		draft.Language = strings.ToLower(strings.TrimSpace(lang))
	}
	if t := dateFromHTML(rawURL, rawHTML); t != nil {
		draft.PublishedAt = t
	}

	return draft, nil
}

// selectDensest returns the candidate container with the most text, or the
// document body when no candidate qualifies.
func selectDensest(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	var bestLen int

	doc.Find(candidateSelector).Each(func(_ int, sel *goquery.Selection) {
		l := len(strings.TrimSpace(sel.Text()))
		if l > bestLen {
			best = sel
			bestLen = l
		}
	})

	if best == nil {
		return doc.Find("body")
	}
	return best
}

// extractTitle prefers og:title metadata over the document title.
func extractTitle(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if title := strings.TrimSpace(content); title != "" {
			return title
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractImages collects img src attributes in document order, deduplicated.
func extractImages(sel *goquery.Selection) []string {
	seen := make(map[string]struct{})
	var urls []string
	sel.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		if src == "" {
			return
		}
		if _, ok := seen[src]; ok {
			return
		}
		seen[src] = struct{}{}
		urls = append(urls, src)
	})
	return urls
}

// cleanText collapses runs of whitespace left behind by markup removal.
func cleanText(s string) string {
	lines := strings.Split(s, "\n")
	var kept []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// dateFromHTML scans raw HTML for a publication date using htmldate.
func dateFromHTML(rawURL, rawHTML string) *time.Time {
	res, err := htmldate.FromReader(strings.NewReader(rawHTML), htmldate.Options{
		URL:             rawURL,
		UseOriginalDate: true,
	})
	if err != nil || res.IsZero() {
		return nil
	}
	t := res.DateTime
	return &t
}
