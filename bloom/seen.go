// Package bloom provides batch-scoped URL deduplication using Bloom
// filters. Each scrape batch gets its own filter, so a URL suppressed in
// one run can be scraped again in the next.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// SeenFilter records which normalized URLs a batch has already claimed.
// Safe for concurrent use by the fan-out workers.
type SeenFilter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewSeenFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewSeenFilter(n uint, fpRate float64) *SeenFilter {
	return &SeenFilter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Claim marks the URL as seen and reports whether it was already claimed.
// A true result may rarely be a false positive, which at worst skips a
// URL; a false result is always accurate.
func (s *SeenFilter) Claim(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of claimed URLs.
func (s *SeenFilter) EstimatedCount() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint(s.f.ApproximatedSize())
}
