// Package export serializes finished reports to JSON, Markdown and DOCX.
// All formats are one-way outputs; only JSON is expected to round-trip.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"websummarizer/internal/report"
)

// JSON renders the report field-for-field. Unmarshaling the output yields
// the original report back.
func JSON(rep *report.Report) ([]byte, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// Markdown renders a human-readable document: query header, source list, one
// section per page summary, then the consolidated summary.
func Markdown(rep *report.Report) string {
	var b strings.Builder

	b.WriteString("# Web Search Summary Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n", rep.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Model:** %s\n\n", rep.Model)

	b.WriteString("## Search Query\n")
	fmt.Fprintf(&b, "**Original Query:** %s\n", rep.OriginalQuery)
	optimized := rep.OptimizedQuery
	if optimized == rep.OriginalQuery {
		optimized = "Same as original"
	}
	fmt.Fprintf(&b, "**Optimized Query:** %s\n\n", optimized)

	b.WriteString("## Sources Found\n")
	for i, url := range rep.SourceURLs() {
		fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, url, url)
	}

	b.WriteString("\n## Individual Summaries\n\n")
	for i, s := range rep.PageSummaries {
		fmt.Fprintf(&b, "### Source %d: %s\n\n%s\n\n", i+1, s.URL, s.Summary)
	}

	b.WriteString("## Final Consolidated Summary\n\n")
	b.WriteString(rep.ConsolidatedText)
	b.WriteString("\n")

	if len(rep.Failures) > 0 {
		b.WriteString("\n## Skipped Pages\n")
		for _, f := range rep.Failures {
			fmt.Fprintf(&b, "- %s (%s: %s)\n", f.URL, f.Stage, f.Reason)
		}
	}

	return b.String()
}

// Filename builds an export filename from the query: letters, digits, dashes
// and underscores survive, spaces become underscores, capped at 50 runes.
func Filename(query, ext string) string {
	var clean []rune
	for _, r := range query {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			clean = append(clean, r)
		case r == ' ':
			clean = append(clean, '_')
		}
	}
	if len(clean) > 50 {
		clean = clean[:50]
	}
	return fmt.Sprintf("websummarizer_%s_%d.%s", string(clean), time.Now().Unix(), ext)
}
