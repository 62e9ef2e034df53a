package main

import (
	"encoding/json"
	"fmt"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
)

// searchResult is the JSON envelope written by the search command.
type searchResult struct {
	Articles []*scraper.Article `json:"articles"`
	Total    int                `json:"total"`
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	filter := scraper.ArticleFilter{
		Query:  c.Query,
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.Domain != "" {
		filter.Domain = &c.Domain
	}

	articles, total, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scraper.ErrorMessage(err))
		return err
	}

	if articles == nil {
		articles = []*scraper.Article{}
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(searchResult{Articles: articles, Total: total}); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	return nil
}
