package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"websummarizer/internal/config"
	"websummarizer/internal/fetch"
	"websummarizer/internal/llm"
	"websummarizer/internal/report"
	"websummarizer/internal/search"
	"websummarizer/internal/summarize"
)

// Service wires the pipeline components together. One Service handles any
// number of runs; runs share nothing beyond the stateless providers.
type Service struct {
	cfg        config.Config
	llm        *llm.Client
	summarizer *summarize.Summarizer
	provider   search.Provider
	fetcher    *fetch.Fetcher
	log        zerolog.Logger
}

func NewService(cfg config.Config, log zerolog.Logger) (*Service, error) {
	client := llm.New(llm.Options{
		BaseURL: cfg.EndpointURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.LLMTimeout,
	})

	var provider search.Provider
	switch cfg.SearchProvider {
	case "duckduckgo":
		provider = search.NewDuckDuckGo()
	case "searxng":
		provider = search.NewSearXNG(cfg.SearxURL)
	case "googlenews":
		provider = search.NewGoogleNews()
	default:
		return nil, fmt.Errorf("unknown search provider %q", cfg.SearchProvider)
	}

	return &Service{
		cfg:        cfg,
		llm:        client,
		summarizer: summarize.New(client, log),
		provider:   provider,
		fetcher:    fetch.New(cfg.PageCharLimit, cfg.FetchTimeout),
		log:        log.With().Str("component", "pipeline").Logger(),
	}, nil
}

// Models lists the model names the endpoint serves.
func (s *Service) Models(ctx context.Context) ([]string, error) {
	return s.llm.Models(ctx)
}

// SetModel switches the model used for subsequent runs.
func (s *Service) SetModel(name string) { s.llm.SetModel(name) }

// Model returns the currently selected model name.
func (s *Service) Model() string { return s.llm.Model() }

// Request is one pipeline invocation. Zero MaxResults means the configured
// default.
type Request struct {
	Query      string `json:"query"`
	MaxResults int    `json:"maxResults"`
	Optimize   bool   `json:"optimize"`
}

// Summarize runs the whole pipeline: optimize the query, search, fetch each
// result, summarize each page, consolidate. Per-page failures are recorded
// on the report and the run continues; search and consolidation failures are
// fatal and no report is returned.
func (s *Service) Summarize(ctx context.Context, req Request) (*report.Report, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("query is empty")
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = s.cfg.MaxResults
	}
	if maxResults > config.MaxResultsCap {
		maxResults = config.MaxResultsCap
	}

	rep := report.New(query)
	rep.Model = s.llm.Model()

	// 1) Query optimization, fallback to the raw query on any failure.
	rep.OptimizedQuery = query
	if req.Optimize {
		rep.OptimizedQuery = s.summarizer.OptimizeQuery(ctx, query)
	}
	s.log.Info().Str("query", rep.OptimizedQuery).Msg("searching")

	// 2) Search. Errors here are fatal; there is nothing to fall back to.
	results, err := s.provider.Search(ctx, rep.OptimizedQuery)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if s.cfg.DedupeResults {
		results = dedupeByURL(results)
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	s.log.Info().Int("results", len(results)).Msg("search done")

	// 3) Fetch + summarize each page in result order.
	for _, res := range results {
		page, err := s.fetcher.Fetch(ctx, res.URL)
		if err != nil {
			s.log.Warn().Str("url", res.URL).Err(err).Msg("page skipped")
			rep.Failures = append(rep.Failures, report.PageFailure{
				URL: res.URL, Stage: report.StageFetch, Reason: err.Error(),
			})
			continue
		}
		if strings.TrimSpace(page.Text) == "" {
			continue
		}

		summary, err := s.summarizer.SummarizePage(ctx, page)
		if err != nil {
			s.log.Warn().Str("url", res.URL).Err(err).Msg("summarization skipped")
			rep.Failures = append(rep.Failures, report.PageFailure{
				URL: res.URL, Stage: report.StageSummarize, Reason: err.Error(),
			})
			continue
		}

		rep.PageSummaries = append(rep.PageSummaries, report.PageSummary{
			URL:     res.URL,
			Title:   res.Title,
			Summary: summary,
		})
	}

	// 4) Consolidate. Zero usable summaries or a model failure aborts the
	// run; no partial report is returned.
	consolidated, err := s.summarizer.Consolidate(ctx, query, rep.PageSummaries)
	if err != nil {
		return nil, err
	}
	rep.ConsolidatedText = consolidated

	s.log.Info().Int("pages", len(rep.PageSummaries)).Int("failed", len(rep.Failures)).Msg("report ready")
	return rep, nil
}

// dedupeByURL keeps the first (highest ranked) occurrence of each URL.
func dedupeByURL(in []search.Result) []search.Result {
	seen := map[string]struct{}{}
	out := make([]search.Result, 0, len(in))
	for _, r := range in {
		u := strings.TrimSpace(r.URL)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, r)
	}
	return out
}
