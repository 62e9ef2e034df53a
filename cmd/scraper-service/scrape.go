package main

import (
	"encoding/json"
	"fmt"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	result, err := deps.Pipeline.Run(deps.Ctx, c.URLs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scraper.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(deps.Stderr, "%d of %d URLs failed\n", len(result.Errors), len(result.Articles)+len(result.Errors))
	}

	return nil
}
