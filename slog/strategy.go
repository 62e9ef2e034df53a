// Package slog provides logging decorators for the engine's domain
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
)

// Ensure LoggingStrategy implements scraper.Strategy.
var _ scraper.Strategy = (*LoggingStrategy)(nil)

// LoggingStrategy wraps a Strategy with per-attempt logging.
type LoggingStrategy struct {
	next   scraper.Strategy
	logger *slog.Logger
}

// NewLoggingStrategy creates a new LoggingStrategy.
func NewLoggingStrategy(next scraper.Strategy, logger *slog.Logger) *LoggingStrategy {
	return &LoggingStrategy{next: next, logger: logger}
}

// Name delegates to the wrapped strategy.
func (s *LoggingStrategy) Name() string {
	return s.next.Name()
}

// Extract delegates to the wrapped strategy and logs the attempt.
func (s *LoggingStrategy) Extract(ctx context.Context, url string) (draft *scraper.Draft, err error) {
	defer func(begin time.Time) {
		var bodyLen int
		if draft != nil {
			bodyLen = len(draft.Body)
		}
		s.logger.Info("extraction attempt",
			"strategy", s.next.Name(),
			"url", url,
			"body_len", bodyLen,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Extract(ctx, url)
}
