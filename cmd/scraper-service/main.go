package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/ZOUBAIRELFADILI/scraper-service/gemini"
	"github.com/ZOUBAIRELFADILI/scraper-service/gofeed"
	"github.com/ZOUBAIRELFADILI/scraper-service/goquery"
	"github.com/ZOUBAIRELFADILI/scraper-service/htmltomarkdown"
	scraperhttp "github.com/ZOUBAIRELFADILI/scraper-service/http"
	"github.com/ZOUBAIRELFADILI/scraper-service/lingua"
	"github.com/ZOUBAIRELFADILI/scraper-service/pipeline"
	"github.com/ZOUBAIRELFADILI/scraper-service/readability"
	"github.com/ZOUBAIRELFADILI/scraper-service/rod"
	scraperslog "github.com/ZOUBAIRELFADILI/scraper-service/slog"
	"github.com/ZOUBAIRELFADILI/scraper-service/sqlite"
	"github.com/ZOUBAIRELFADILI/scraper-service/trafilatura"
	"github.com/ZOUBAIRELFADILI/scraper-service/whatlanggo"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ArticleService scraper.ArticleStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scraper-service"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'scraper-service --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SCRAPER_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ArticleService = scraperslog.NewLoggingArticleStore(sqlite.NewArticleService(m.DB), logger)
	deps.DB = m.DB
	deps.Articles = m.ArticleService

	if cmd == "scrape" {
		fetcher := scraperhttp.NewFetcher()
		defer fetcher.Close()

		strategies := []scraper.Strategy{
			trafilatura.NewStrategy(fetcher),
			readability.NewStrategy(fetcher),
			goquery.NewStrategy(fetcher),
		}

		var homepageFetcher scraper.Fetcher
		if cli.Scrape.Render {
			manager, err := rod.NewBrowserManager()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --no-render")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer manager.Close()

			strategies = append(strategies, rod.NewStrategy(manager))
			homepageFetcher = rod.NewFetcher(manager)
		}

		for i, s := range strategies {
			strategies[i] = scraperslog.NewLoggingStrategy(s, logger)
		}

		p := &pipeline.Pipeline{
			Fetcher:    fetcher,
			Strategies: strategies,
			Sources: []scraper.LinkSource{
				gofeed.NewFeedSource(fetcher),
				goquery.NewAnchorSource(),
			},
			Detectors: []scraper.LanguageDetector{
				whatlanggo.NewDetector(),
				lingua.NewDetector(),
			},
			Favicons:        fetcher,
			HomepageFetcher: homepageFetcher,
			RateLimiter:     pipeline.NewDomainLimiter(cli.Scrape.RPS),
			Logger:          logger,
			Concurrency:     cli.Scrape.Concurrency,
			MaxAge:          time.Duration(cli.Scrape.MaxAge) * 24 * time.Hour,
			KeepUndated:     !cli.Scrape.DropUndated,
		}

		if cli.Scrape.Markdown {
			p.Converter = htmltomarkdown.NewConverter()
		}

		if cli.Scrape.Store {
			p.Store = m.ArticleService
		}

		if cli.Scrape.Enrich {
			apiKey := os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
				return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
			}

			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}

			p.Enricher = gemini.NewEnricher(client)
		}

		deps.Pipeline = p
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("SCRAPER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "scraper.db"
	}
	dir := filepath.Join(home, ".scraper-service")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "scraper.db")
}
