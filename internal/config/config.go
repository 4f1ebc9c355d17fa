// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration. It is immutable after
// LoadWithKoanf returns and safe for concurrent reads.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Similarity SimilarityConfig `koanf:"similarity"`
	Ranker     RankerConfig     `koanf:"ranker"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Trending   TrendingConfig   `koanf:"trending"`
	Feedback   FeedbackConfig   `koanf:"feedback"`
	Security   SecurityConfig   `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CatalogConfig configures the Jikan client.
type CatalogConfig struct {
	BaseURL           string        `koanf:"base_url"`
	Timeout           time.Duration `koanf:"timeout"`
	MaxAttempts       int           `koanf:"max_attempts"`
	Backoff           time.Duration `koanf:"backoff"`
	SearchLimit       int           `koanf:"search_limit"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`

	// Circuit breaker
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerOpenTimeout  time.Duration `koanf:"breaker_open_timeout"`
}

// SimilarityConfig configures the remote semantic similarity provider.
// An empty APIToken disables the provider.
type SimilarityConfig struct {
	Provider     string        `koanf:"provider"`
	BaseURL      string        `koanf:"base_url"`
	Model        string        `koanf:"model"`
	Task         string        `koanf:"task"`
	APIToken     string        `koanf:"api_token"`
	MaxRetries   int           `koanf:"max_retries"`
	RetryDelay   time.Duration `koanf:"retry_delay"`
	WaitForModel bool          `koanf:"wait_for_model"`
	Timeout      time.Duration `koanf:"timeout"`
}

// RankerConfig configures the optional generative full-ranking provider.
type RankerConfig struct {
	Provider     string        `koanf:"provider"`
	OpenAIAPIKey string        `koanf:"openai_api_key"`
	GeminiAPIKey string        `koanf:"gemini_api_key"`
	Model        string        `koanf:"model"`
	Endpoint     string        `koanf:"endpoint"`
	Temperature  float64       `koanf:"temperature"`
	MaxTokens    int           `koanf:"max_tokens"`
	Timeout      time.Duration `koanf:"timeout"`
}

// APIKey returns the credential for the selected provider.
func (r RankerConfig) APIKey() string {
	switch r.Provider {
	case "openai":
		return r.OpenAIAPIKey
	case "gemini":
		return r.GeminiAPIKey
	default:
		return ""
	}
}

// RecommendConfig tunes the ranking pipeline.
type RecommendConfig struct {
	MaxSeeds          int           `koanf:"max_seeds"`
	MinEnriched       int           `koanf:"min_enriched"`
	MaxResults        int           `koanf:"max_results"`
	EnrichConcurrency int           `koanf:"enrich_concurrency"`
	SimilarityWeight  float64       `koanf:"similarity_weight"`
	GenreWeight       float64       `koanf:"genre_weight"`
	PopularityWeight  float64       `koanf:"popularity_weight"`
	PopularityFloor   float64       `koanf:"popularity_floor"`
	PopularitySpan    float64       `koanf:"popularity_span"`
	StrongTopScore    float64       `koanf:"strong_top_score"`
	StrictThreshold   float64       `koanf:"strict_threshold"`
	RelaxedThreshold  float64       `koanf:"relaxed_threshold"`
	MinFiltered       int           `koanf:"min_filtered"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`
}

// TrendingConfig configures the trending listings.
type TrendingConfig struct {
	TopLimit         int           `koanf:"top_limit"`
	CategoryLimit    int           `koanf:"category_limit"`
	CacheTTL         time.Duration `koanf:"cache_ttl"`
	CategoryCacheTTL time.Duration `koanf:"category_cache_ttl"`
	CacheCapacity    int           `koanf:"cache_capacity"`
	JanitorInterval  time.Duration `koanf:"janitor_interval"`
}

// FeedbackConfig configures the feedback store. An empty Path keeps
// feedback in memory only.
type FeedbackConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// SecurityConfig holds inbound HTTP protection settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
