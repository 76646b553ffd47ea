package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchStripsMarkup(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head>
			<script>var tracking = "evil";</script>
			<style>body { color: red }</style>
		</head><body>
			<nav>Home | About | Contact</nav>
			<article>`+strings.Repeat("The actual article body with enough text to pass the boilerplate check. ", 5)+`</article>
			<footer>Copyright notice</footer>
		</body></html>`)
	})

	f := New(8000, 5*time.Second)
	page, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, srv.URL, page.URL)
	assert.Contains(t, page.Text, "actual article body")
	assert.NotContains(t, page.Text, "tracking")
	assert.NotContains(t, page.Text, "color: red")
	assert.NotContains(t, page.Text, "Home | About")
	assert.NotContains(t, page.Text, "Copyright")
	assert.NotContains(t, page.Text, "<")
	assert.False(t, page.Truncated)
}

func TestFetchTruncates(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "<html><body><article>%s</article></body></html>", strings.Repeat("word ", 500))
	})

	f := New(100, 5*time.Second)
	page, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.True(t, page.Truncated)
	assert.Len(t, []rune(page.Text), 100)
}

func TestFetchRejectsNonHTML(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "%PDF-1.4")
	})

	f := New(8000, 5*time.Second)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content type")
}

func TestFetchRejectsErrorStatus(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	f := New(8000, 5*time.Second)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchEmptyURL(t *testing.T) {
	f := New(8000, 5*time.Second)
	_, err := f.Fetch(context.Background(), "  ")
	require.Error(t, err)
}

func TestFetchFallsBackToBody(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><p>Short page with no article wrapper but plenty of plain body text to read.</p></body></html>")
	})

	f := New(8000, 5*time.Second)
	page, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, page.Text, "plain body text")
}
