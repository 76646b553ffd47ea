// Package fetch retrieves web pages and reduces them to plain text suitable
// for a model prompt.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"websummarizer/internal/report"
)

// Body size cap; pages bigger than this are cut before parsing.
const maxBodyBytes = 5 * 1024 * 1024

// Fetcher performs the GET + strip + truncate step for one URL at a time.
type Fetcher struct {
	client    *http.Client
	charLimit int
}

func New(charLimit int, timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		charLimit: charLimit,
	}
}

// NewWithClient overrides the HTTP client, mainly for tests.
func NewWithClient(charLimit int, client *http.Client) *Fetcher {
	return &Fetcher{client: client, charLimit: charLimit}
}

// Fetch downloads the URL, extracts readable text and truncates it to the
// configured character limit. Non-HTML and non-2xx responses are errors the
// pipeline records as per-page failures.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (report.PageContent, error) {
	trimmed := strings.TrimSpace(pageURL)
	if trimmed == "" {
		return report.PageContent{}, errors.New("url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trimmed, nil)
	if err != nil {
		return report.PageContent{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return report.PageContent{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return report.PageContent{}, fmt.Errorf("http %d", resp.StatusCode)
	}

	ctype := resp.Header.Get("Content-Type")
	if ctype != "" && !strings.Contains(ctype, "text/html") && !strings.Contains(ctype, "application/xhtml") && !strings.Contains(ctype, "text/plain") {
		return report.PageContent{}, fmt.Errorf("unsupported content type %q", ctype)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return report.PageContent{}, fmt.Errorf("parse html: %w", err)
	}

	text := extractText(doc)
	if text == "" {
		return report.PageContent{}, errors.New("no readable text")
	}

	truncated := false
	if runes := []rune(text); f.charLimit > 0 && len(runes) > f.charLimit {
		text = string(runes[:f.charLimit])
		truncated = true
	}

	return report.PageContent{URL: trimmed, Text: text, Truncated: truncated}, nil
}

// Selectors tried in order before falling back to the whole body. A hit
// shorter than this is treated as boilerplate and skipped.
var mainSelectors = []string{"main", "article", "#content", ".content", "#main", ".post", ".entry"}

const minMainContent = 200

var reSpaces = regexp.MustCompile(`\s+`)

func extractText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, iframe, nav, header, footer, form").Remove()

	var content string
	for _, sel := range mainSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			content = s.Text()
			if len(content) >= minMainContent {
				break
			}
		}
	}
	if len(content) < minMainContent {
		content = doc.Find("body").Text()
	}

	return strings.TrimSpace(reSpaces.ReplaceAllString(content, " "))
}
