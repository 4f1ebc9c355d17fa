// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/animerec/config.yaml",
	"/etc/animerec/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    90 * time.Second, // ranking with retries can exceed a minute
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			BaseURL:             "https://api.jikan.moe/v4",
			Timeout:             15 * time.Second,
			MaxAttempts:         3,
			Backoff:             500 * time.Millisecond,
			SearchLimit:         10,
			RequestsPerSecond:   3, // Jikan public limit
			Burst:               3,
			BreakerFailureRatio: 0.6,
			BreakerMinRequests:  10,
			BreakerOpenTimeout:  time.Minute,
		},
		Similarity: SimilarityConfig{
			Provider:     "huggingface",
			BaseURL:      "https://api-inference.huggingface.co",
			Model:        "sentence-transformers/all-MiniLM-L6-v2",
			Task:         "sentence-similarity",
			MaxRetries:   3,
			RetryDelay:   2500 * time.Millisecond,
			WaitForModel: true,
			Timeout:      30 * time.Second,
		},
		Ranker: RankerConfig{
			Provider:    "openai",
			Endpoint:    "https://api.openai.com/v1/chat/completions",
			Temperature: 0.1,
			MaxTokens:   1000,
			Timeout:     30 * time.Second,
		},
		Recommend: RecommendConfig{
			MaxSeeds:          20,
			MinEnriched:       5,
			MaxResults:        12,
			EnrichConcurrency: 20,
			SimilarityWeight:  0.7,
			GenreWeight:       0.2,
			PopularityWeight:  0.1,
			PopularityFloor:   4,
			PopularitySpan:    6,
			StrongTopScore:    0.5,
			StrictThreshold:   0.1,
			RelaxedThreshold:  0.05,
			MinFiltered:       3,
			RequestTimeout:    0, // no request-level budget beyond HTTP client timeouts
		},
		Trending: TrendingConfig{
			TopLimit:         24,
			CategoryLimit:    24,
			CacheTTL:         time.Hour,
			CategoryCacheTTL: 5 * time.Minute,
			CacheCapacity:    256,
			JanitorInterval:  time.Minute,
		},
		Feedback: FeedbackConfig{
			Enabled: true,
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
	}
}

// LoadWithKoanf loads configuration from defaults, an optional YAML file and
// the environment, in that order of increasing precedence, then validates it.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to config paths.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"port":                  "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Catalog
	"jikan_base_url":        "catalog.base_url",
	"jikan_timeout":         "catalog.timeout",
	"jikan_max_attempts":    "catalog.max_attempts",
	"jikan_backoff":         "catalog.backoff",
	"jikan_search_limit":    "catalog.search_limit",
	"jikan_rate_limit":      "catalog.requests_per_second",
	"jikan_rate_burst":      "catalog.burst",
	"jikan_breaker_ratio":   "catalog.breaker_failure_ratio",
	"jikan_breaker_min":     "catalog.breaker_min_requests",
	"jikan_breaker_timeout": "catalog.breaker_open_timeout",

	// Similarity
	"similarity_provider":   "similarity.provider",
	"hf_token":              "similarity.api_token",
	"huggingface_api_token": "similarity.api_token",
	"hf_base_url":           "similarity.base_url",
	"hf_model":              "similarity.model",
	"hf_task":               "similarity.task",
	"hf_max_retries":        "similarity.max_retries",
	"hf_retry_delay":        "similarity.retry_delay",
	"hf_wait_for_model":     "similarity.wait_for_model",
	"hf_timeout":            "similarity.timeout",

	// Ranker
	"ranker_provider":    "ranker.provider",
	"openai_api_key":     "ranker.openai_api_key",
	"gemini_api_key":     "ranker.gemini_api_key",
	"openai_model":       "ranker.model",
	"gemini_model":       "ranker.model",
	"openai_endpoint":    "ranker.endpoint",
	"ranker_temperature": "ranker.temperature",
	"ranker_max_tokens":  "ranker.max_tokens",
	"ranker_timeout":     "ranker.timeout",

	// Recommend
	"recommend_max_seeds":          "recommend.max_seeds",
	"recommend_min_enriched":       "recommend.min_enriched",
	"recommend_max_results":        "recommend.max_results",
	"recommend_enrich_concurrency": "recommend.enrich_concurrency",
	"recommend_request_timeout":    "recommend.request_timeout",

	// Trending
	"trending_top_limit":          "trending.top_limit",
	"trending_category_limit":     "trending.category_limit",
	"trending_cache_ttl":          "trending.cache_ttl",
	"trending_category_cache_ttl": "trending.category_cache_ttl",
	"trending_cache_capacity":     "trending.cache_capacity",
	"trending_janitor_interval":   "trending.janitor_interval",

	// Feedback
	"feedback_enabled": "feedback.enabled",
	"feedback_path":    "feedback.path",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
}

// envTransformFunc maps an environment variable name to a koanf path.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
