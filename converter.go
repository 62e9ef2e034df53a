package scraper

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms content HTML (e.g. a strategy's cleaned output)
	// into Markdown.
	Convert(html string) (string, error)
}
