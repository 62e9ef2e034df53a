// Package gemini implements article enrichment using Google Gemini:
// summarization, keyword extraction and fake-news likelihood scoring in a
// single structured call.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	scraper "github.com/ZOUBAIRELFADILI/scraper-service"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// maxBodyChars bounds how much article body is sent per request.
const maxBodyChars = 20000

// Ensure Enricher implements scraper.Enricher at compile time.
var _ scraper.Enricher = (*Enricher)(nil)

// Enricher implements scraper.Enricher using Google Gemini.
type Enricher struct {
	client *genai.Client
}

// NewEnricher creates a new Enricher.
func NewEnricher(client *genai.Client) *Enricher {
	return &Enricher{client: client}
}

// enrichmentResponse is the JSON shape the model is instructed to return.
type enrichmentResponse struct {
	Summary    string   `json:"summary"`
	Keywords   []string `json:"keywords"`
	IsFakeNews bool     `json:"isFakeNews"`
	Confidence float64  `json:"confidence"`
}

// Enrich produces a summary, keywords and a fake-news assessment for the
// article.
func (e *Enricher) Enrich(ctx context.Context, article *scraper.Article) (*scraper.Enrichment, error) {
	if article == nil || strings.TrimSpace(article.Body) == "" {
		return nil, scraper.Errorf(scraper.EINVALID, "article body required")
	}

	prompt := BuildUserPrompt(article)
	config := BuildConfig()

	result, err := e.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, scraper.Errorf(scraper.EINTERNAL, "gemini returned nil result")
	}

	var resp enrichmentResponse
	if err := json.Unmarshal([]byte(result.Text()), &resp); err != nil {
		return nil, scraper.Errorf(scraper.EINTERNAL, "failed to decode enrichment response: %v", err)
	}

	return &scraper.Enrichment{
		Summary:    resp.Summary,
		Keywords:   resp.Keywords,
		IsFakeNews: resp.IsFakeNews,
		Confidence: resp.Confidence,
	}, nil
}

// BuildConfig returns the GenerateContentConfig for enrichment calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a news analysis assistant. Given an article, respond with JSON " +
					`matching {"summary": string, "keywords": [string], "isFakeNews": bool, "confidence": number}. ` +
					"The summary is at most three sentences. Keywords are at most ten short topical phrases. " +
					"isFakeNews reflects whether the article shows hallmarks of misinformation, " +
					"with confidence between 0 and 1.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildUserPrompt builds the user prompt containing the article.
func BuildUserPrompt(article *scraper.Article) string {
	body := article.Body
	if len(body) > maxBodyChars {
		body = body[:maxBodyChars]
	}

	var sb strings.Builder
	sb.WriteString("<article>\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", article.Title)
	fmt.Fprintf(&sb, "<source>%s</source>\n", article.SourceDomain)
	fmt.Fprintf(&sb, "<content>%s</content>\n", body)
	sb.WriteString("</article>\n\nAnalyze the article above.")
	return sb.String()
}
