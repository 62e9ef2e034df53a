package scraper_test

import (
	"testing"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := scraper.Errorf(scraper.ENOTFOUND, "article %q not found", "test")

	assert.Equal(t, scraper.ENOTFOUND, scraper.ErrorCode(err))
	assert.Equal(t, "article \"test\" not found", scraper.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, scraper.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, scraper.ErrorMessage(nil))
}

func TestArticle_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *scraper.Article {
		return &scraper.Article{
			URL:          "https://example.com/news/one",
			SourceDomain: "example.com",
			Title:        "Headline",
			Body:         "Body text.",
		}
	}

	t.Run("accepts a complete article", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid().Validate())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		t.Parallel()

		for name, mutate := range map[string]func(*scraper.Article){
			"url":    func(a *scraper.Article) { a.URL = "" },
			"domain": func(a *scraper.Article) { a.SourceDomain = "" },
			"title":  func(a *scraper.Article) { a.Title = "" },
			"body":   func(a *scraper.Article) { a.Body = "" },
		} {
			a := valid()
			mutate(a)
			err := a.Validate()
			assert.Error(t, err, name)
			assert.Equal(t, scraper.EINVALID, scraper.ErrorCode(err), name)
		}
	})
}
