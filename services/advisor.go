// ABOUTME: AI advisory wrapper around a generative-text service
// ABOUTME: Never raises past its boundary; always returns renderable text

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Bibekdka/3dd/config"
	"github.com/Bibekdka/3dd/models"
)

// mockAnalysis is the deterministic fallback shown when no live call is
// made. Kept renderable so the UI never has to special-case it.
const mockAnalysis = `General community-based recommendations:
- Layer height: 0.2 mm
- Infill: 15-20%
- Nozzle temp: 200-210 C
- Supports: only for overhangs over 45 degrees
- Watch for warping on large flat surfaces and stringing at high temperatures.`

// textGenerator is the collaborator boundary for generative text,
// narrowed so tests can count calls.
type textGenerator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// anthropicGenerator calls the Anthropic Messages API.
type anthropicGenerator struct {
	client    anthropic.Client
	maxTokens int64
}

func (g *anthropicGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("messages call failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// Advisor produces print recommendations from a generative-text service,
// degrading to deterministic local output when the service is missing or
// failing.
type Advisor struct {
	generator    textGenerator
	models       []string
	minPromptLen int
}

// NewAdvisor builds an advisor from config. Without an API key the
// generator stays nil and every request is answered in mock mode with no
// network call attempted.
func NewAdvisor(cfg *config.Config) *Advisor {
	a := &Advisor{
		models:       cfg.AIModels,
		minPromptLen: cfg.AIMinPromptLen,
	}
	if cfg.AIConfigured() {
		a.generator = &anthropicGenerator{
			client:    anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey)),
			maxTokens: int64(cfg.AIMaxTokens),
		}
	}
	return a
}

// Advise sends promptText to the text-generation collaborator and
// normalizes the response. Mode is mock when no credentials are
// configured or the trimmed prompt is shorter than the minimum length;
// live on the first successful non-empty response across the fallback
// model list; error when every model fails.
func (a *Advisor) Advise(ctx context.Context, promptText string) models.Advice {
	trimmed := strings.TrimSpace(promptText)

	if len(trimmed) < a.minPromptLen {
		return models.Advice{Mode: models.AdviceMock, Analysis: mockAnalysis}
	}
	if a.generator == nil {
		return models.Advice{Mode: models.AdviceMock, Analysis: mockAnalysis}
	}

	var lastErr error
	for _, model := range a.models {
		text, err := a.generator.Generate(ctx, model, trimmed)
		if err != nil {
			slog.Warn("Advisory model failed, trying next", "model", model, "error", err)
			lastErr = err
			continue
		}
		if text == "" {
			slog.Warn("Advisory model returned empty response, trying next", "model", model)
			lastErr = models.NewCollaboratorError("advise", "empty response", nil)
			continue
		}
		return models.Advice{Mode: models.AdviceLive, Analysis: text, Model: model}
	}

	slog.Error("All advisory models failed", "models", a.models, "error", lastErr)
	return models.Advice{
		Mode:     models.AdviceError,
		Analysis: "AI advisory unavailable after trying all configured models. " + mockAnalysis,
	}
}

// BatchPrompt builds the advisory prompt for a completed batch analysis.
func BatchPrompt(outcomes []models.AnalysisOutcome, totals models.BatchTotals) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze this 3D print production batch of %d files:\n", totals.ItemCount)
	fmt.Fprintf(&sb, "Total cost: %.2f\nTotal weight: %.1f g\nTotal print time: %.2f h\n\nFiles:\n", totals.TotalCost, totals.TotalWeightGrams, totals.TotalPrintTimeHours)
	for _, o := range outcomes {
		if o.Failed() {
			fmt.Fprintf(&sb, "- %s: failed (%s)\n", o.FileName, o.Error)
			continue
		}
		r := o.Record
		fmt.Fprintf(&sb, "- %s: raw %.2f cm3, effective %.2f cm3, %.1f g, cost %.2f, %.2f h, watertight=%t\n",
			r.FileName, r.RawVolumeCm3, r.EffectiveVolumeCm3, r.WeightGrams, r.Cost, r.PrintTimeHours, r.Watertight)
	}
	sb.WriteString("\nProvide a concise summary recommendation for this production batch: infill/wall balance, structural or print-time concerns, and cost optimizations. Bullet points.")
	return sb.String()
}

// ScrapePrompt builds the advisory prompt for scraped model-page content.
func ScrapePrompt(result models.ScrapeResult) string {
	var sb strings.Builder
	sb.WriteString("Analyze this scraped 3D model page content:\n\n")
	if result.Title != "" {
		fmt.Fprintf(&sb, "TITLE: %s\n", result.Title)
	}
	fmt.Fprintf(&sb, "RAW TEXT:\n%s\n\n", result.Text)
	sb.WriteString(`TASKS:
1. Extract key print settings (layer height, infill, walls, supports) if mentioned.
2. Summarize the model description.
3. Summarize user reviews and sentiment.
4. Identify any warnings or common print failures mentioned.

Format nicely with Markdown.`)
	return sb.String()
}
