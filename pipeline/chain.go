// Package pipeline orchestrates the scraping workflow: URL
// classification, strategy-chain extraction, post-processing, recency
// filtering, enrichment and storage.
package pipeline

import (
	"context"
	"strings"
	"time"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
)

// DefaultStrategyTimeout bounds each individual strategy attempt.
const DefaultStrategyTimeout = 30 * time.Second

// Chain runs extraction strategies in a fixed order until one produces a
// draft with a non-empty body. A strategy error and an empty-body draft
// are the same thing to the chain: move on to the next strategy.
type Chain struct {
	Strategies []scraper.Strategy
	Timeout    time.Duration
}

// Extract tries each strategy in order and returns the first usable draft
// together with the name of the strategy that produced it. Returns
// EUNAVAILABLE when every strategy has been exhausted.
func (c *Chain) Extract(ctx context.Context, url string) (*scraper.Draft, string, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultStrategyTimeout
	}

	for _, strategy := range c.Strategies {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		draft, err := strategy.Extract(attemptCtx, url)
		cancel()

		if err != nil {
			continue
		}
		if draft == nil || strings.TrimSpace(draft.Body) == "" {
			continue
		}
		return draft, strategy.Name(), nil
	}

	return nil, "", scraper.Errorf(scraper.EUNAVAILABLE, "all extraction strategies exhausted for %s", url)
}
