package search

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// GoogleNews searches the Google News RSS endpoint. Suited to news-style
// queries; items link through a news.google.com wrapper, so the real
// publisher URL is pulled out of the item description where possible.
type GoogleNews struct {
	client *http.Client
	parser *gofeed.Parser
}

func NewGoogleNews() *GoogleNews {
	return &GoogleNews{
		client: &http.Client{Timeout: 20 * time.Second},
		parser: gofeed.NewParser(),
	}
}

// Matches href="..." or href='...'
var reHref = regexp.MustCompile(`(?i)\bhref\s*=\s*(?:"([^"]+)"|'([^']+)')`)

var reTags = regexp.MustCompile(`<[^>]+>`)

func (g *GoogleNews) Search(ctx context.Context, query string) ([]Result, error) {
	u := fmt.Sprintf(
		"https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en",
		url.QueryEscape(query),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 websummarizer/0.1")
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.1")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("google news rss http %d", resp.StatusCode)
	}

	feed, err := g.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse google news feed: %w", err)
	}

	out := make([]Result, 0, len(feed.Items))
	for _, it := range feed.Items {
		link := publisherURL(it.Description, strings.TrimSpace(it.Link))
		if link == "" {
			continue
		}
		out = append(out, Result{
			URL:     link,
			Title:   strings.TrimSpace(it.Title),
			Snippet: snippetFromDescription(it.Description),
		})
	}
	return out, nil
}

// publisherURL digs the real article URL out of the item description, which
// carries an anchor to the publisher. Falls back to the wrapper link so the
// fetcher can still follow redirects.
func publisherURL(desc, wrapper string) string {
	desc = strings.TrimSpace(desc)
	// Google sometimes double-encodes entities.
	for i := 0; i < 3; i++ {
		unescaped := html.UnescapeString(desc)
		if unescaped == desc {
			break
		}
		desc = unescaped
	}

	for _, m := range reHref.FindAllStringSubmatch(desc, -1) {
		href := strings.TrimSpace(m[1])
		if href == "" {
			href = strings.TrimSpace(m[2])
		}
		if isPublisherURL(href) {
			return href
		}
	}
	return wrapper
}

func isPublisherURL(raw string) bool {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	return host != "news.google.com" && host != "google.com" && !strings.HasSuffix(host, ".google.com")
}

func snippetFromDescription(desc string) string {
	s := reTags.ReplaceAllString(desc, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
