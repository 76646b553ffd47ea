package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Search result bounds, matching the limits the UI exposes.
const (
	MinResults     = 1
	MaxResultsCap  = 10
	DefaultResults = 5
)

// Config carries every knob the pipeline components need. It is loaded once
// from the environment and passed into constructors; nothing reads the
// environment after startup.
type Config struct {
	// Model endpoint (OpenAI-compatible, e.g. Ollama or LM Studio).
	EndpointURL string        `mapstructure:"endpoint_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	LLMTimeout  time.Duration `mapstructure:"llm_timeout"`

	// Search.
	SearchProvider string `mapstructure:"search_provider"` // duckduckgo | searxng | googlenews
	SearxURL       string `mapstructure:"searx_url"`
	MaxResults     int    `mapstructure:"max_results"`
	DedupeResults  bool   `mapstructure:"dedupe_results"`

	// Fetching.
	PageCharLimit int           `mapstructure:"page_char_limit"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`

	// Pipeline behavior.
	OptimizeQuery bool `mapstructure:"optimize_query"`
}

// Load reads WEBSUM_* environment variables with defaults applied.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("websum")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("endpoint_url", "http://localhost:11434/v1")
	v.SetDefault("api_key", "ollama")
	v.SetDefault("model", "llama3.2")
	v.SetDefault("llm_timeout", "120s")
	v.SetDefault("search_provider", "duckduckgo")
	v.SetDefault("searx_url", "http://localhost:8080")
	v.SetDefault("max_results", DefaultResults)
	v.SetDefault("dedupe_results", true)
	v.SetDefault("page_char_limit", 8000)
	v.SetDefault("fetch_timeout", "15s")
	v.SetDefault("optimize_query", true)

	// Bind explicitly so AutomaticEnv sees keys that are never Set.
	for _, key := range []string{
		"endpoint_url", "api_key", "model", "llm_timeout",
		"search_provider", "searx_url", "max_results", "dedupe_results",
		"page_char_limit", "fetch_timeout", "optimize_query",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate clamps nothing; out-of-range values are rejected so a bad
// environment is visible at startup rather than at search time.
func (c Config) Validate() error {
	if strings.TrimSpace(c.EndpointURL) == "" {
		return fmt.Errorf("endpoint URL is empty")
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("model name is empty")
	}
	if c.MaxResults < MinResults || c.MaxResults > MaxResultsCap {
		return fmt.Errorf("max_results %d out of range [%d,%d]", c.MaxResults, MinResults, MaxResultsCap)
	}
	switch c.SearchProvider {
	case "duckduckgo", "searxng", "googlenews":
	default:
		return fmt.Errorf("unknown search provider %q", c.SearchProvider)
	}
	if c.PageCharLimit <= 0 {
		return fmt.Errorf("page_char_limit must be positive")
	}
	return nil
}
