package main

import (
	"context"
	"io"
	"log/slog"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/ZOUBAIRELFADILI/scraper-service/pipeline"
	"github.com/ZOUBAIRELFADILI/scraper-service/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Articles scraper.ArticleStore
	Pipeline *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB string `help:"Database file path (overrides SCRAPER_DB)"`

	Scrape ScrapeCmd `cmd:"" help:"Scrape articles from one or more URLs"`
	Search SearchCmd `cmd:"" help:"Search previously scraped articles"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string `arg:"" help:"Seed URLs: article pages or listing pages"`
	Concurrency int      `short:"c" default:"10" help:"Concurrent scrape limit"`
	MaxAge      int      `name:"max-age" default:"180" help:"Drop articles older than this many days (0 disables)"`
	DropUndated bool     `help:"Also drop articles without a parseable publication date"`
	Render      bool     `default:"true" negatable:"" help:"Enable the browser-rendered extraction strategy"`
	Markdown    bool     `help:"Render extracted content as markdown"`
	Enrich      bool     `help:"Enrich articles with Gemini (requires GEMINI_API_KEY)"`
	Store       bool     `default:"true" negatable:"" help:"Persist articles to the database"`
	RPS         float64  `name:"rps" default:"1" help:"Per-domain request rate limit"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  string `arg:"" optional:"" help:"Text to match against title, body and keywords"`
	Domain string `help:"Restrict results to a source domain"`
	Limit  int    `default:"10" help:"Maximum results to return"`
	Offset int    `default:"0" help:"Results to skip for pagination"`
}
