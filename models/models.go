// ABOUTME: Shared API response models for the print cost analyzer
// ABOUTME: JSON-serializable structures matching frontend expectations

package models

import "time"

// AdviceMode tells the caller how an advisory response was produced.
type AdviceMode string

const (
	AdviceLive  AdviceMode = "live"  // successful non-empty model response
	AdviceMock  AdviceMode = "mock"  // no credentials or input too short; no call attempted
	AdviceError AdviceMode = "error" // live attempt exhausted all fallback models
)

// Advice is the fixed-shape advisory result. Analysis is always
// renderable text, whatever happened underneath.
type Advice struct {
	Mode     AdviceMode `json:"mode"`
	Analysis string     `json:"analysis"`
	Model    string     `json:"model,omitempty"` // model that produced a live response
}

// ScrapeResult is the normalized output of a model-page scrape.
type ScrapeResult struct {
	URL      string   `json:"url"`
	Domain   string   `json:"domain"`
	Title    string   `json:"title,omitempty"`
	Text     string   `json:"text"`
	Images   []string `json:"images"`
	STLLinks []string `json:"stl_links"`
	DebugLog []string `json:"debug_log,omitempty"`
}

// AnalyzeResponse is the response for a batch analysis request.
type AnalyzeResponse struct {
	Outcomes []AnalysisOutcome `json:"outcomes"`
	Totals   BatchTotals       `json:"totals"`
	Quote    *QuoteBreakdown   `json:"quote,omitempty"`
	Metadata Metadata          `json:"metadata"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Cached    bool      `json:"cached"`
	Warnings  []string  `json:"warnings,omitempty"`
}
