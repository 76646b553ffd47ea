package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearXNGSearch(t *testing.T) {
	var gotQuery, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotFormat = r.URL.Query().Get("format")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results": [
			{"title": "First", "url": "https://example.com/1", "content": "snippet one"},
			{"title": "Second", "url": "https://example.com/2", "content": "snippet two"}
		]}`)
	}))
	defer srv.Close()

	s := NewSearXNG(srv.URL)
	results, err := s.Search(context.Background(), "rust vs go")
	require.NoError(t, err)

	assert.Equal(t, "rust vs go", gotQuery)
	assert.Equal(t, "json", gotFormat)
	require.Len(t, results, 2)
	assert.Equal(t, Result{URL: "https://example.com/1", Title: "First", Snippet: "snippet one"}, results[0])
	assert.Equal(t, Result{URL: "https://example.com/2", Title: "Second", Snippet: "snippet two"}, results[1])
}

func TestSearXNGSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewSearXNG(srv.URL)
	_, err := s.Search(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestSearXNGSearchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer srv.Close()

	s := NewSearXNG(srv.URL)
	_, err := s.Search(context.Background(), "q")
	require.Error(t, err)
}
