// Package urlnorm provides pure URL canonicalization: tracking-parameter
// stripping, fragment removal, relative-reference resolution and domain
// extraction. All functions are side-effect free.
package urlnorm

import (
	"net/url"
	"strings"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
)

// trackingParams is the deny-list of query parameters removed during
// normalization. utm_* is matched by prefix.
var trackingParams = map[string]struct{}{
	"fbclid":   {},
	"gclid":    {},
	"msclkid":  {},
	"ref":      {},
	"source":   {},
	"referrer": {},
	"mc_cid":   {},
	"mc_eid":   {},
}

// Normalize canonicalizes a URL: drops the fragment, removes deny-listed
// tracking parameters while preserving the relative order and multiplicity
// of the remaining ones, and verifies the result is an absolute http(s) URL
// with a non-empty host. Normalize is idempotent.
//
// Returns EINVALID if the input does not parse to such a URL.
func Normalize(raw string) (string, error) {
	if raw == "" {
		return "", scraper.Errorf(scraper.EINVALID, "empty URL")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", scraper.Errorf(scraper.EINVALID, "unparseable URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", scraper.Errorf(scraper.EINVALID, "unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", scraper.Errorf(scraper.EINVALID, "URL %q has no host", raw)
	}

	u.Fragment = ""
	u.RawFragment = ""
	u.RawQuery = stripTracking(u.RawQuery)

	return u.String(), nil
}

// Resolve resolves a possibly-relative reference against base, then
// normalizes the result.
func Resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", scraper.Errorf(scraper.EINVALID, "unparseable base URL %q", base)
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", scraper.Errorf(scraper.EINVALID, "unparseable reference %q", ref)
	}
	return Normalize(b.ResolveReference(r).String())
}

// Origin returns the scheme://host root of a URL.
// Returns EINVALID for input without an http(s) scheme and host.
func Origin(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", scraper.Errorf(scraper.EINVALID, "unparseable URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", scraper.Errorf(scraper.EINVALID, "unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", scraper.Errorf(scraper.EINVALID, "URL %q has no host", raw)
	}
	return u.Scheme + "://" + u.Host, nil
}

// Domain extracts the host from a URL, stripping a leading "www." label and
// any port. Returns "" for unparseable input.
func Domain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	return strings.TrimPrefix(host, "www.")
}

// stripTracking removes deny-listed keys from a raw query string, keeping
// the remaining pairs in their original order. url.Values cannot be used
// here because it loses ordering.
func stripTracking(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	var kept []string
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key := pair
		if idx := strings.Index(pair, "="); idx != -1 {
			key = pair[:idx]
		}
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if isTrackingParam(key) {
			continue
		}
		kept = append(kept, pair)
	}
	return strings.Join(kept, "&")
}

func isTrackingParam(key string) bool {
	key = strings.ToLower(key)
	if strings.HasPrefix(key, "utm_") {
		return true
	}
	_, ok := trackingParams[key]
	return ok
}
