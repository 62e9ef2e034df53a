// Package lingua implements statistical language detection used as the
// fallback when trigram detection declines. Building the detector loads
// sizeable language models, so construct one Detector and share it.
package lingua

import (
	"strings"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/pemistahl/lingua-go"
)

// Ensure Detector implements scraper.LanguageDetector at compile time.
var _ scraper.LanguageDetector = (*Detector)(nil)

// Detector identifies text language with lingua's n-gram models.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector creates a new Detector covering all supported languages.
func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build(),
	}
}

// Detect returns the ISO 639-1 code for the text's language. Returns
// ENOTFOUND when no language can be determined.
func (d *Detector) Detect(text string) (string, error) {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", scraper.Errorf(scraper.ENOTFOUND, "no language detected")
	}
	code := lang.IsoCode639_1().String()
	if code == "" {
		return "", scraper.Errorf(scraper.ENOTFOUND, "no ISO 639-1 code for detected language")
	}
	return strings.ToLower(code), nil
}
