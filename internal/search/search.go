// Package search provides web search providers behind a common interface.
package search

import "context"

// Result is a single ranked item returned by a Provider.
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Provider executes a query and returns ranked results. Providers return
// whatever the backing service gives them; the pipeline applies the
// configured result cap and deduplication.
type Provider interface {
	Search(ctx context.Context, query string) ([]Result, error)
}
