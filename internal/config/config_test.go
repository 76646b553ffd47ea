package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434/v1", cfg.EndpointURL)
	assert.Equal(t, "llama3.2", cfg.Model)
	assert.Equal(t, DefaultResults, cfg.MaxResults)
	assert.Equal(t, "duckduckgo", cfg.SearchProvider)
	assert.Equal(t, 8000, cfg.PageCharLimit)
	assert.Equal(t, 120*time.Second, cfg.LLMTimeout)
	assert.True(t, cfg.DedupeResults)
	assert.True(t, cfg.OptimizeQuery)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("WEBSUM_MODEL", "qwen3")
	t.Setenv("WEBSUM_MAX_RESULTS", "8")
	t.Setenv("WEBSUM_SEARCH_PROVIDER", "searxng")
	t.Setenv("WEBSUM_SEARX_URL", "http://searx.local:8888")
	t.Setenv("WEBSUM_OPTIMIZE_QUERY", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "qwen3", cfg.Model)
	assert.Equal(t, 8, cfg.MaxResults)
	assert.Equal(t, "searxng", cfg.SearchProvider)
	assert.Equal(t, "http://searx.local:8888", cfg.SearxURL)
	assert.False(t, cfg.OptimizeQuery)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"max results too high", "WEBSUM_MAX_RESULTS", "50"},
		{"max results zero", "WEBSUM_MAX_RESULTS", "0"},
		{"unknown provider", "WEBSUM_SEARCH_PROVIDER", "altavista"},
		{"empty model", "WEBSUM_MODEL", " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{
		EndpointURL:    "http://localhost:11434/v1",
		Model:          "llama3.2",
		SearchProvider: "duckduckgo",
		MaxResults:     5,
		PageCharLimit:  8000,
	}
	assert.NoError(t, cfg.Validate())

	bad := cfg
	bad.PageCharLimit = 0
	assert.Error(t, bad.Validate())
}
