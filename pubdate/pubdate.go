// Package pubdate parses heterogeneous publication-date strings into
// canonical timestamps and applies recency policy to scraped articles.
//
// Parsing tries an ordered list of full-string layouts before falling back
// to scanning for a YYYY-MM-DD shaped substring. Full-string matches are
// trusted over substring scraping to avoid false positives from unrelated
// digit sequences near a date.
package pubdate

import (
	"regexp"
	"strconv"
	"time"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
)

// layouts is the ordered list of accepted full-string formats.
// Ambiguous numeric dates are read day-first (European convention):
// "15/01/2023" is the 15th of January.
var layouts = []string{
	time.RFC3339,                // 2023-01-15T10:30:00Z / +offset
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006", // day-first before month-first
	"01/02/2006",
	"02-01-2006",
	"01-02-2006",
	"02.01.2006",
	"2006/01/02",
	"January 2, 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

var isoDatePattern = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)

// Parse converts a free-form date string into a canonical UTC timestamp.
// The second return value reports whether parsing succeeded.
func Parse(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	// Substring fallback: a YYYY-MM-DD shape anywhere in the text.
	if m := isoDatePattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// Recent reports whether t falls within maxAge of now.
func Recent(t, now time.Time, maxAge time.Duration) bool {
	return !t.Before(now.Add(-maxAge))
}

// FilterRecent returns the articles published within maxAge of now.
// Articles without a parseable publication date are kept or dropped
// according to keepUndated. A maxAge of zero disables filtering entirely.
func FilterRecent(articles []*scraper.Article, now time.Time, maxAge time.Duration, keepUndated bool) []*scraper.Article {
	if maxAge == 0 {
		return articles
	}

	kept := make([]*scraper.Article, 0, len(articles))
	for _, a := range articles {
		if a.PublishedAt == nil {
			if keepUndated {
				kept = append(kept, a)
			}
			continue
		}
		if Recent(*a.PublishedAt, now, maxAge) {
			kept = append(kept, a)
		}
	}
	return kept
}
