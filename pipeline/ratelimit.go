package pipeline

import (
	"context"
	"sync"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"golang.org/x/time/rate"
)

var _ scraper.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter throttles fetches per source domain using token buckets.
// Each domain gets its own bucket, created on first use, so concurrent
// work on different domains proceeds freely while requests within a
// domain queue behind the configured rate.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithBurst allows up to n requests to a domain before throttling kicks
// in. Values below 1 are ignored.
func WithBurst(n int) LimiterOption {
	return func(d *DomainLimiter) {
		if n > 0 {
			d.burst = n
		}
	}
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second to each domain. The default burst of 1 means requests within a
// domain are strictly spaced.
func NewDomainLimiter(rps float64, opts ...LimiterOption) *DomainLimiter {
	d := &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiter(domain).Wait(ctx)
}

func (d *DomainLimiter) limiter(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[domain] = limiter
	}
	return limiter
}
