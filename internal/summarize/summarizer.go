// Package summarize holds the model-backed pipeline stages: query
// optimization, per-page summarization and consolidation.
package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"websummarizer/internal/report"
)

// Generator is the model endpoint surface the summarizer needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNoSummaries is returned by Consolidate when no page produced a summary.
var ErrNoSummaries = errors.New("no content to summarize")

type Summarizer struct {
	gen Generator
	log zerolog.Logger
}

func New(gen Generator, log zerolog.Logger) *Summarizer {
	return &Summarizer{gen: gen, log: log.With().Str("component", "summarize").Logger()}
}

// OptimizeQuery asks the model for an improved search query. Any failure
// (call error, unparseable JSON, empty result) falls back to the raw query
// and is reported as a warning, never an error.
func (s *Summarizer) OptimizeQuery(ctx context.Context, rawQuery string) string {
	text, err := s.gen.Generate(ctx, fmt.Sprintf(queryOptimizerPrompt, rawQuery))
	if err != nil {
		s.log.Warn().Err(err).Msg("query optimization failed, using original query")
		return rawQuery
	}

	var parsed struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(cleanModelResponse(text)), &parsed); err != nil {
		s.log.Warn().Err(err).Msg("could not parse optimized query, using original query")
		return rawQuery
	}
	if strings.TrimSpace(parsed.Query) == "" {
		s.log.Warn().Msg("optimizer returned empty query, using original query")
		return rawQuery
	}
	return strings.TrimSpace(parsed.Query)
}

// SummarizePage produces a short summary of one fetched page.
func (s *Summarizer) SummarizePage(ctx context.Context, page report.PageContent) (string, error) {
	text, err := s.gen.Generate(ctx, fmt.Sprintf(pageSummaryPrompt, page.Text))
	if err != nil {
		return "", fmt.Errorf("summarize %s: %w", page.URL, err)
	}
	return text, nil
}

// Consolidate merges the per-page summaries into one final text. An empty
// input is ErrNoSummaries; a model failure here is fatal to the run.
func (s *Summarizer) Consolidate(ctx context.Context, query string, summaries []report.PageSummary) (string, error) {
	if len(summaries) == 0 {
		return "", ErrNoSummaries
	}

	var b strings.Builder
	for i, sum := range summaries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Summary %d:\n\t%s", i+1, sum.Summary)
	}

	text, err := s.gen.Generate(ctx, fmt.Sprintf(finalSummaryPrompt, query, b.String()))
	if err != nil {
		return "", fmt.Errorf("consolidate summaries: %w", err)
	}
	return text, nil
}

// cleanModelResponse strips markdown code fences and reasoning tags so the
// payload can be parsed as JSON. Reasoning models wrap their actual answer
// after a </think> tag.
func cleanModelResponse(text string) string {
	text = strings.TrimSpace(text)

	if idx := strings.LastIndex(text, "</think>"); idx >= 0 {
		text = strings.TrimSpace(text[idx+len("</think>"):])
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.Index(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	return text
}
