package report

import (
	"time"

	"github.com/google/uuid"
)

// PageContent is the cleaned text of one fetched page. It only lives between
// the fetch and summarize stages and is not part of the final report.
type PageContent struct {
	URL       string `json:"url"`
	Text      string `json:"text"`
	Truncated bool   `json:"truncated"`
}

// PageSummary is the model's summary of a single page.
type PageSummary struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Stage names recorded on per-page failures.
const (
	StageFetch     = "fetch"
	StageSummarize = "summarize"
)

// PageFailure records a page that was dropped from the run, and why.
type PageFailure struct {
	URL    string `json:"url"`
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}

// Report is the consolidated output of one pipeline run. PageSummaries keep
// the original search-result order and never exceed the configured result cap.
type Report struct {
	ID               string        `json:"id"`
	CreatedAt        time.Time     `json:"created_at"`
	OriginalQuery    string        `json:"original_query"`
	OptimizedQuery   string        `json:"optimized_query"`
	Model            string        `json:"model"`
	PageSummaries    []PageSummary `json:"page_summaries"`
	Failures         []PageFailure `json:"failures,omitempty"`
	ConsolidatedText string        `json:"consolidated_text"`
}

// New starts an empty report for a run.
func New(originalQuery string) *Report {
	return &Report{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		OriginalQuery: originalQuery,
	}
}

// SourceURLs lists the summarized page URLs in report order.
func (r *Report) SourceURLs() []string {
	out := make([]string, 0, len(r.PageSummaries))
	for _, s := range r.PageSummaries {
		out = append(out, s.URL)
	}
	return out
}
