package mock

import (
	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
)

var _ scraper.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of scraper.LanguageDetector.
type LanguageDetector struct {
	DetectFn func(text string) (string, error)
}

func (d *LanguageDetector) Detect(text string) (string, error) {
	return d.DetectFn(text)
}
