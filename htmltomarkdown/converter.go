// Package htmltomarkdown renders extracted article markup as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
)

// Ensure Converter implements scraper.Converter at compile time.
var _ scraper.Converter = (*Converter)(nil)

// Converter renders article HTML as Markdown suitable for storage
// alongside the plain-text body.
type Converter struct {
	conv   *converter.Converter
	tables bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithoutTables renders table contents as running text instead of pipe
// tables. Useful when the markdown is fed to consumers that choke on
// GFM table syntax.
func WithoutTables() Option {
	return func(c *Converter) {
		c.tables = false
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{tables: true}
	for _, opt := range opts {
		opt(c)
	}

	plugins := []converter.Plugin{
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	}
	if c.tables {
		plugins = append(plugins, table.NewTablePlugin())
	}
	c.conv = converter.NewConverter(converter.WithPlugins(plugins...))
	return c
}

// Convert transforms HTML content into Markdown. Leading and trailing
// whitespace is stripped so stored markdown stays compact.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", scraper.Errorf(scraper.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}
