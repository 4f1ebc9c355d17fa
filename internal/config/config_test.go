// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Catalog.MaxAttempts != 3 || cfg.Catalog.Backoff != 500*time.Millisecond {
		t.Errorf("catalog retry defaults = %d x %v", cfg.Catalog.MaxAttempts, cfg.Catalog.Backoff)
	}
	if cfg.Similarity.RetryDelay != 2500*time.Millisecond || cfg.Similarity.MaxRetries != 3 {
		t.Errorf("similarity retry defaults = %d x %v", cfg.Similarity.MaxRetries, cfg.Similarity.RetryDelay)
	}
	r := cfg.Recommend
	if r.MaxSeeds != 20 || r.MaxResults != 12 || r.MinEnriched != 5 || r.MinFiltered != 3 {
		t.Errorf("unexpected recommend caps %+v", r)
	}
	if r.SimilarityWeight != 0.7 || r.GenreWeight != 0.2 || r.PopularityWeight != 0.1 {
		t.Errorf("unexpected weights %+v", r)
	}
	if cfg.Trending.CacheTTL != time.Hour {
		t.Errorf("Trending.CacheTTL = %v, want 1h", cfg.Trending.CacheTTL)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"HF_TOKEN", "similarity.api_token"},
		{"HUGGINGFACE_API_TOKEN", "similarity.api_token"},
		{"OPENAI_API_KEY", "ranker.openai_api_key"},
		{"GEMINI_API_KEY", "ranker.gemini_api_key"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HF_TOKEN", "hf_test")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("JIKAN_BACKOFF", "250ms")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Similarity.APIToken != "hf_test" {
		t.Errorf("Similarity.APIToken = %q", cfg.Similarity.APIToken)
	}
	if cfg.Ranker.APIKey() != "sk-test" {
		t.Errorf("Ranker.APIKey() = %q", cfg.Ranker.APIKey())
	}
	if cfg.Catalog.Backoff != 250*time.Millisecond {
		t.Errorf("Catalog.Backoff = %v, want 250ms", cfg.Catalog.Backoff)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
}

func TestLoadWithKoanfConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  port: 8888
  host: "127.0.0.1"
recommend:
  max_results: 8
ranker:
  provider: "none"
logging:
  level: "warn"
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 8888 || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server from file = %+v", cfg.Server)
	}
	if cfg.Recommend.MaxResults != 8 {
		t.Errorf("Recommend.MaxResults = %d, want 8", cfg.Recommend.MaxResults)
	}
	if cfg.Ranker.Provider != "none" {
		t.Errorf("Ranker.Provider = %q", cfg.Ranker.Provider)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want env override", cfg.Logging.Level)
	}
	if cfg.Recommend.MaxSeeds != 20 {
		t.Errorf("Recommend.MaxSeeds = %d, want default 20", cfg.Recommend.MaxSeeds)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad catalog url", func(c *Config) { c.Catalog.BaseURL = "ftp://jikan" }, "JIKAN_BASE_URL"},
		{"search limit too small", func(c *Config) { c.Catalog.SearchLimit = 5 }, "JIKAN_SEARCH_LIMIT"},
		{"unknown ranker", func(c *Config) { c.Ranker.Provider = "claude" }, "RANKER_PROVIDER"},
		{"unknown task", func(c *Config) { c.Similarity.Task = "summarization" }, "HF_TASK"},
		{"similarity disabled skips task", func(c *Config) {
			c.Similarity.Provider = "none"
			c.Similarity.Task = ""
		}, ""},
		{"negative weight", func(c *Config) { c.Recommend.GenreWeight = -1 }, "weights"},
		{"threshold out of range", func(c *Config) { c.Recommend.StrictThreshold = 1.5 }, "thresholds"},
		{"rate limit window", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRankerAPIKey(t *testing.T) {
	r := RankerConfig{OpenAIAPIKey: "o", GeminiAPIKey: "g"}
	for provider, want := range map[string]string{"openai": "o", "gemini": "g", "none": ""} {
		r.Provider = provider
		if got := r.APIKey(); got != want {
			t.Errorf("APIKey() for %s = %q, want %q", provider, got, want)
		}
	}
}
