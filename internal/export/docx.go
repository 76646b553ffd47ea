package export

import (
	"fmt"
	"strings"

	"github.com/gingfrederik/docx"

	"websummarizer/internal/report"
)

// Docx writes the report as a Word document at path.
func Docx(rep *report.Report, path string) error {
	f := docx.NewFile()

	p := f.AddParagraph()
	run := p.AddText("Web Search Summary Report")
	run.Size(20)

	p = f.AddParagraph()
	p.AddText(fmt.Sprintf("Query: %s", rep.OriginalQuery))
	if rep.OptimizedQuery != rep.OriginalQuery {
		p = f.AddParagraph()
		run = p.AddText(fmt.Sprintf("Optimized: %s", rep.OptimizedQuery))
		run.Size(10)
		run.Color("808080")
	}

	f.AddParagraph() // Spacer

	for i, s := range rep.PageSummaries {
		p = f.AddParagraph()
		run = p.AddText(fmt.Sprintf("Source %d: %s", i+1, s.Title))
		run.Size(16)

		p = f.AddParagraph()
		run = p.AddText(s.URL)
		run.Size(10)
		run.Color("0000FF")

		for _, txt := range strings.Split(s.Summary, "\n\n") {
			txt = strings.TrimSpace(txt)
			if txt != "" {
				f.AddParagraph().AddText(txt)
			}
		}
		f.AddParagraph().AddText("--------------------------------------------------")
	}

	f.AddParagraph() // Spacer

	p = f.AddParagraph()
	run = p.AddText("Final Consolidated Summary")
	run.Size(16)
	for _, txt := range strings.Split(rep.ConsolidatedText, "\n\n") {
		txt = strings.TrimSpace(txt)
		if txt != "" {
			f.AddParagraph().AddText(txt)
		}
	}

	return f.Save(path)
}
