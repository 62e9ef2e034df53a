// Package whatlanggo implements trigram-based language detection. It is
// the primary detector: fast and dependency-free, but it declines to
// answer when its confidence is low so a heavier detector can take over.
package whatlanggo

import (
	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"github.com/RadhiFadlillah/whatlanggo"
)

// Ensure Detector implements scraper.LanguageDetector at compile time.
var _ scraper.LanguageDetector = (*Detector)(nil)

// Detector identifies text language with trigram profiles.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the ISO 639-1 code for the text's language. Returns
// ENOTFOUND when the detection is not reliable enough to trust.
func (d *Detector) Detect(text string) (string, error) {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return "", scraper.Errorf(scraper.ENOTFOUND, "no reliable language detection")
	}
	code := whatlanggo.LangToStringShort(info.Lang)
	if code == "" {
		return "", scraper.Errorf(scraper.ENOTFOUND, "no ISO 639-1 code for detected language")
	}
	return code, nil
}
