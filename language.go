package scraper

// DefaultLanguage is the sentinel language code used when no detector
// produces a reliable answer.
const DefaultLanguage = "en"

// LanguageDetector identifies the language of a text.
type LanguageDetector interface {
	// Detect returns the ISO 639-1 code for the text's language.
	// Returns ENOTFOUND when the detector cannot produce a reliable answer,
	// letting callers fall back to another detector.
	Detect(text string) (string, error)
}
