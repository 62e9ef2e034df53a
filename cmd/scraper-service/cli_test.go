package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/ZOUBAIRELFADILI/scraper-service/cmd/scraper-service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	// Kong prints help even if Parse returns an error
	helpOutput := stdout.String()

	expectedCommands := []string{"scrape", "search"}
	for _, cmd := range expectedCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ScrapeDefaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"scrape", "https://example.com/news/one"})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com/news/one"}, cli.Scrape.URLs)
	assert.Equal(t, 10, cli.Scrape.Concurrency)
	assert.Equal(t, 180, cli.Scrape.MaxAge)
	assert.False(t, cli.Scrape.DropUndated)
	assert.True(t, cli.Scrape.Render)
	assert.True(t, cli.Scrape.Store)
	assert.False(t, cli.Scrape.Enrich)
	assert.Equal(t, 1.0, cli.Scrape.RPS)
}

func TestCLI_ScrapeFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{
		"scrape",
		"--concurrency", "3",
		"--max-age", "0",
		"--no-render",
		"--markdown",
		"--no-store",
		"https://a.example.com", "https://b.example.com",
	})
	require.NoError(t, err)

	assert.Len(t, cli.Scrape.URLs, 2)
	assert.Equal(t, 3, cli.Scrape.Concurrency)
	assert.Equal(t, 0, cli.Scrape.MaxAge)
	assert.False(t, cli.Scrape.Render)
	assert.True(t, cli.Scrape.Markdown)
	assert.False(t, cli.Scrape.Store)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	expectedCommands := []string{"scrape", "search"}
	for _, cmd := range expectedCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_NoCommand(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{}, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_SearchEmptyDatabase(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"search", "anything"}, stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), `"total": 0`)
}
