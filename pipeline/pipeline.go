package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/ZOUBAIRELFADILI/scraper-service/bloom"
	"github.com/ZOUBAIRELFADILI/scraper-service/goquery"
	"github.com/ZOUBAIRELFADILI/scraper-service/pubdate"
	"github.com/ZOUBAIRELFADILI/scraper-service/urlnorm"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// seenFalsePositiveRate is the acceptable false positive rate for the
// batch-scoped deduplication filter.
const seenFalsePositiveRate = 0.01

// Pipeline coordinates classification, extraction and the post-processing
// stages for batches of seed URLs. Zero-value optional collaborators
// (Converter, Enricher, Store, Favicons, HomepageFetcher, RateLimiter)
// disable their stage.
type Pipeline struct {
	// Fetcher downloads pages for listing classification.
	Fetcher scraper.Fetcher

	// Strategies is the extraction chain, tried in order.
	Strategies []scraper.Strategy

	// Sources classify pages and harvest article links; the first source
	// reporting more than one distinct link decides the page is a listing.
	Sources []scraper.LinkSource

	// Detectors identify article language, tried in order.
	Detectors []scraper.LanguageDetector

	Converter scraper.Converter
	Enricher  scraper.Enricher
	Store     scraper.ArticleStore

	// Favicons probes /favicon.ico for logo backfill; HomepageFetcher
	// renders the site homepage as a second backfill step.
	Favicons        scraper.FaviconProber
	HomepageFetcher scraper.Fetcher

	RateLimiter scraper.DomainLimiter
	Logger      *slog.Logger

	Concurrency     int
	StrategyTimeout time.Duration

	// MaxAge drops articles older than the cutoff; 0 disables the filter.
	// KeepUndated decides the fate of articles without a parsed date.
	MaxAge      time.Duration
	KeepUndated bool

	RetryDelays []time.Duration
}

// outcome is the result of processing a single URL: exactly one of
// article and failure is set.
type outcome struct {
	article *scraper.Article
	failure *scraper.ScrapeError
}

// Run processes a batch of seed URLs and returns the aggregate result.
// Every processed URL contributes exactly one article or one error;
// listing pages contribute through their harvested links instead of
// directly.
func (p *Pipeline) Run(ctx context.Context, urls []string) (*scraper.BatchResult, error) {
	if len(urls) == 0 {
		return nil, scraper.Errorf(scraper.EINVALID, "no URLs to process")
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	runID := uuid.New().String()
	begin := time.Now()
	logger.Info("batch started", "run_id", runID, "seeds", len(urls))

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	expected := uint(len(urls) * (scraper.MaxArticlesPerListing + 1))
	seen := bloom.NewSeenFilter(expected, seenFalsePositiveRate)

	outcomeCh := make(chan outcome, int(expected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, url := range urls {
			url := url
			g.Go(func() error {
				p.processSeed(gctx, logger, url, seen, outcomeCh)
				return nil
			})
		}
		_ = g.Wait()
		close(outcomeCh)
	}()

	result := &scraper.BatchResult{}
	for out := range outcomeCh {
		if out.failure != nil {
			result.Errors = append(result.Errors, *out.failure)
		} else if out.article != nil {
			result.Articles = append(result.Articles, out.article)
		}
	}

	if p.MaxAge > 0 {
		result.Articles = pubdate.FilterRecent(result.Articles, time.Now().UTC(), p.MaxAge, p.KeepUndated)
	}

	p.enrich(ctx, logger, result.Articles)
	p.store(ctx, logger, result)

	logger.Info("batch finished",
		"run_id", runID,
		"articles", len(result.Articles),
		"errors", len(result.Errors),
		"duration", time.Since(begin),
	)
	return result, nil
}

// processSeed handles one input URL: normalize, classify, and either
// extract it as a single article or fan out across its harvested links.
func (p *Pipeline) processSeed(ctx context.Context, logger *slog.Logger, rawURL string, seen *bloom.SeenFilter, outcomeCh chan<- outcome) {
	normalized, err := urlnorm.Normalize(rawURL)
	if err != nil {
		outcomeCh <- failure(rawURL, "invalid URL", err)
		return
	}

	if seen.Claim(normalized) {
		outcomeCh <- failure(rawURL, "duplicate URL in batch", nil)
		return
	}

	html, err := p.fetch(ctx, logger, normalized)
	if err != nil {
		outcomeCh <- failure(normalized, "failed to fetch page", err)
		return
	}

	links := p.classify(ctx, logger, normalized, html)
	if len(links) <= 1 {
		outcomeCh <- p.processArticle(ctx, logger, normalized)
		return
	}

	logger.Info("listing detected", "url", normalized, "links", len(links))

	// Sub-article failures are collected per link, never propagated, so
	// one broken article cannot cancel its siblings.
	var sub errgroup.Group
	for _, link := range links {
		link := link
		sub.Go(func() error {
			if seen.Claim(link.URL) {
				return nil
			}
			outcomeCh <- p.processArticle(ctx, logger, link.URL)
			return nil
		})
	}
	_ = sub.Wait()
}

// classify runs the link sources in order and returns the first harvest
// with more than one distinct link. Source errors are logged and treated
// as empty harvests.
func (p *Pipeline) classify(ctx context.Context, logger *slog.Logger, pageURL, html string) []scraper.CandidateLink {
	for _, source := range p.Sources {
		links, err := source.DiscoverArticleLinks(ctx, pageURL, html)
		if err != nil {
			logger.Warn("link discovery failed", "url", pageURL, "err", err)
			continue
		}
		if len(links) > 1 {
			return links
		}
	}
	return nil
}

// processArticle runs the strategy chain on a single article URL and
// post-processes the winning draft.
func (p *Pipeline) processArticle(ctx context.Context, logger *slog.Logger, url string) outcome {
	if p.RateLimiter != nil {
		if err := p.RateLimiter.Wait(ctx, urlnorm.Domain(url)); err != nil {
			return failure(url, "canceled while rate limited", err)
		}
	}

	chain := &Chain{Strategies: p.Strategies, Timeout: p.StrategyTimeout}
	draft, strategy, err := chain.Extract(ctx, url)
	if err != nil {
		return failure(url, "all extraction strategies failed", err)
	}
	logger.Info("article extracted", "url", url, "strategy", strategy)

	return outcome{article: p.finalize(ctx, logger, url, draft)}
}

// finalize turns a winning draft into an Article: date resolution,
// language detection, URL normalization and logo backfill.
func (p *Pipeline) finalize(ctx context.Context, logger *slog.Logger, url string, draft *scraper.Draft) *scraper.Article {
	article := &scraper.Article{
		URL:          url,
		SourceDomain: urlnorm.Domain(url),
		Title:        strings.TrimSpace(draft.Title),
		Body:         strings.TrimSpace(draft.Body),
		ScrapedAt:    time.Now().UTC(),
	}
	if article.Title == "" {
		article.Title = url
	}

	switch {
	case draft.PublishedAt != nil:
		t := draft.PublishedAt.UTC()
		article.PublishedAt = &t
	case draft.DateRaw != "":
		if t, ok := pubdate.Parse(draft.DateRaw); ok {
			t = t.UTC()
			article.PublishedAt = &t
		}
	}

	article.Language = p.detectLanguage(article.Body, draft.Language)
	article.ImageURLs = resolveImageURLs(url, draft.ImageURLs)
	article.LogoURL = p.resolveLogo(ctx, url, draft.LogoURL)

	if p.Converter != nil && draft.ContentHTML != "" {
		if md, err := p.Converter.Convert(draft.ContentHTML); err == nil {
			article.Markdown = md
		} else {
			logger.Warn("markdown rendering failed", "url", url, "err", err)
		}
	}

	return article
}

// detectLanguage walks the detector chain, then the draft's document
// hint, then the default.
func (p *Pipeline) detectLanguage(body, hint string) string {
	for _, detector := range p.Detectors {
		if code, err := detector.Detect(body); err == nil && code != "" {
			return code
		}
	}
	if hint != "" {
		return hint
	}
	return scraper.DefaultLanguage
}

// resolveImageURLs resolves and normalizes image URLs against the article
// URL, dropping unresolvable ones and deduplicating while preserving
// order.
func resolveImageURLs(base string, raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	var urls []string
	for _, img := range raw {
		resolved, err := urlnorm.Resolve(base, img)
		if err != nil {
			continue
		}
		if _, ok := seen[resolved]; ok {
			continue
		}
		seen[resolved] = struct{}{}
		urls = append(urls, resolved)
	}
	return urls
}

// resolveLogo normalizes the draft's logo when present, then falls back
// to the favicon probe and finally a rendered homepage scan.
func (p *Pipeline) resolveLogo(ctx context.Context, url, draftLogo string) string {
	if draftLogo != "" {
		if resolved, err := urlnorm.Resolve(url, draftLogo); err == nil {
			return resolved
		}
	}

	if p.Favicons != nil {
		if favicon := p.Favicons.FaviconURL(ctx, url); favicon != "" {
			return favicon
		}
	}

	if p.HomepageFetcher != nil {
		if origin, err := urlnorm.Origin(url); err == nil {
			if html, err := p.HomepageFetcher.Fetch(ctx, origin); err == nil {
				if logo := goquery.LogoFromHTML(html, origin); logo != "" {
					return logo
				}
			}
		}
	}

	return ""
}

// enrich runs the optional enricher over the surviving articles. An
// enrichment failure leaves the base article untouched.
func (p *Pipeline) enrich(ctx context.Context, logger *slog.Logger, articles []*scraper.Article) {
	if p.Enricher == nil {
		return
	}
	for _, article := range articles {
		enrichment, err := p.Enricher.Enrich(ctx, article)
		if err != nil {
			logger.Warn("enrichment failed", "url", article.URL, "err", err)
			continue
		}
		article.Summary = enrichment.Summary
		article.Keywords = enrichment.Keywords
		isFake := enrichment.IsFakeNews
		confidence := enrichment.Confidence
		article.IsFakeNews = &isFake
		article.Confidence = &confidence
	}
}

// store persists the surviving articles. Store failures are reported as
// batch errors but the extracted article stays in the result.
func (p *Pipeline) store(ctx context.Context, logger *slog.Logger, result *scraper.BatchResult) {
	if p.Store == nil {
		return
	}
	for _, article := range result.Articles {
		if err := p.Store.UpsertArticle(ctx, article); err != nil {
			logger.Warn("article store failed", "url", article.URL, "err", err)
			result.Errors = append(result.Errors, scraper.ScrapeError{
				URL:     article.URL,
				Message: "failed to store article",
				Trace:   err.Error(),
			})
		}
	}
}

// fetch downloads a page with retry backoff.
func (p *Pipeline) fetch(ctx context.Context, logger *slog.Logger, url string) (string, error) {
	if p.RateLimiter != nil {
		if err := p.RateLimiter.Wait(ctx, urlnorm.Domain(url)); err != nil {
			return "", err
		}
	}
	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, url, p.Fetcher.Fetch, logger, delays)
}

// failure builds an error outcome for a URL.
func failure(url, message string, err error) outcome {
	fail := &scraper.ScrapeError{URL: url, Message: message}
	if err != nil {
		fail.Trace = err.Error()
	}
	return outcome{failure: fail}
}
