package goquery

import (
	"strings"

	"github.com/ZOUBAIRELFADILI/scraper-service/urlnorm"
	"github.com/PuerkitoBio/goquery"
)

// logoSelectors are tried in order: explicit icon links first, social
// preview images as a last resort.
var logoSelectors = []struct {
	selector string
	attr     string
}{
	{`link[rel="icon"]`, "href"},
	{`link[rel="shortcut icon"]`, "href"},
	{`link[rel="apple-touch-icon"]`, "href"},
	{`meta[property="og:image"]`, "content"},
	{`meta[name="twitter:image"]`, "content"},
}

// LogoFromHTML selects a site logo URL from page markup, resolving it
// against baseURL. Returns "" when no candidate is present.
func LogoFromHTML(rawHTML, baseURL string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	for _, ls := range logoSelectors {
		val, ok := doc.Find(ls.selector).First().Attr(ls.attr)
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		if val == "" {
			continue
		}
		if resolved, err := urlnorm.Resolve(baseURL, val); err == nil {
			return resolved
		}
	}
	return ""
}
