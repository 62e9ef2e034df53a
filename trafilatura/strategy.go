// Package trafilatura implements the first extraction strategy: a
// metadata-driven DOM heuristic over raw (non-rendered) HTML, wrapping
// go-trafilatura's content-density scoring and boilerplate stripping.
package trafilatura

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Strategy implements scraper.Strategy at compile time.
var _ scraper.Strategy = (*Strategy)(nil)

// Strategy extracts articles using go-trafilatura over raw HTML.
type Strategy struct {
	fetcher scraper.Fetcher
}

// NewStrategy creates a new Strategy that downloads pages with fetcher.
func NewStrategy(fetcher scraper.Fetcher) *Strategy {
	return &Strategy{fetcher: fetcher}
}

// Name returns the strategy identifier.
func (s *Strategy) Name() string { return "trafilatura" }

// Extract downloads the page and runs trafilatura extraction with its
// built-in fallbacks enabled.
func (s *Strategy) Extract(ctx context.Context, rawURL string) (*scraper.Draft, error) {
	rawHTML, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, scraper.Errorf(scraper.EINVALID, "unparseable URL %q", rawURL)
	}

	opts := trafilatura.Options{
		OriginalURL:    parsedURL,
		EnableFallback: true,
		IncludeImages:  true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	draft := &scraper.Draft{
		Title:    result.Metadata.Title,
		Body:     result.ContentText,
		Language: result.Metadata.Language,
	}
	if !result.Metadata.Date.IsZero() {
		published := result.Metadata.Date
		draft.PublishedAt = &published
	}
	if result.Metadata.Image != "" {
		draft.ImageURLs = append(draft.ImageURLs, result.Metadata.Image)
	}
	if result.ContentNode != nil {
		if rendered, err := renderNode(result.ContentNode); err == nil {
			draft.ContentHTML = rendered
		}
		draft.ImageURLs = appendImageSources(draft.ImageURLs, result.ContentNode)
	}

	return draft, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// appendImageSources walks the content tree collecting img src attributes,
// skipping duplicates of URLs already present in dst.
func appendImageSources(dst []string, root *html.Node) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, u := range dst {
		seen[u] = struct{}{}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "img" {
			for _, attr := range n.Attr {
				if attr.Key != "src" || attr.Val == "" {
					continue
				}
				if _, ok := seen[attr.Val]; !ok {
					seen[attr.Val] = struct{}{}
					dst = append(dst, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return dst
}
