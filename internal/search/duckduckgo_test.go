package search

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const litePage = `<html><body><table>
<tr><td>1.</td><td><a rel="nofollow" href="https://example.com/rust-vs-go" class='result-link'>Rust vs Go performance</a></td></tr>
<tr><td>&nbsp;</td><td class='result-snippet'>A detailed benchmark comparison.</td></tr>
<tr><td>2.</td><td><a rel="nofollow" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fblog.example.org%2Fpost&amp;rut=abc" class='result-link'>Experience report</a></td></tr>
<tr><td>&nbsp;</td><td class='result-snippet'>Two years of production Go.</td></tr>
<tr><td>3.</td><td><a href="https://ads.example.net/x" class='result-link'></a></td></tr>
</table></body></html>`

func TestParseLiteResults(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(litePage))
	require.NoError(t, err)

	results := parseLiteResults(doc)
	require.Len(t, results, 2)

	assert.Equal(t, Result{
		URL:     "https://example.com/rust-vs-go",
		Title:   "Rust vs Go performance",
		Snippet: "A detailed benchmark comparison.",
	}, results[0])

	// Redirect links are unwrapped to the target URL.
	assert.Equal(t, "https://blog.example.org/post", results[1].URL)
	assert.Equal(t, "Experience report", results[1].Title)
}

func TestCleanDDGRedirect(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"https://example.com/page", "https://example.com/page"},
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fa", "https://example.com/a"},
		{"https://duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fb&rut=x", "https://example.com/b"},
		{"https://duckduckgo.com/about", "https://duckduckgo.com/about"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, cleanDDGRedirect(tt.in), "input %q", tt.in)
	}
}

func TestDuckDuckGoEmptyQuery(t *testing.T) {
	d := NewDuckDuckGo()
	_, err := d.Search(context.Background(), "   ")
	require.Error(t, err)
}
