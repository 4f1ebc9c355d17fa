// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"json": true, "console": true,
}

var validSimilarityProviders = map[string]bool{
	"huggingface": true, "none": true,
}

var validRankerProviders = map[string]bool{
	"openai": true, "gemini": true, "none": true,
}

var validSimilarityTasks = map[string]bool{
	"sentence-similarity": true, "feature-extraction": true,
}

// Validate checks that configuration values are usable. Missing provider
// credentials are allowed.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateCatalog,
		c.validateSimilarity,
		c.validateRanker,
		c.validateRecommend,
		c.validateTrending,
		c.validateSecurity,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if err := validateHTTPURL(c.Catalog.BaseURL, "JIKAN_BASE_URL"); err != nil {
		return err
	}
	if c.Catalog.MaxAttempts < 1 || c.Catalog.MaxAttempts > 10 {
		return fmt.Errorf("JIKAN_MAX_ATTEMPTS must be between 1 and 10")
	}
	if c.Catalog.Backoff < 0 {
		return fmt.Errorf("JIKAN_BACKOFF must not be negative")
	}
	if c.Catalog.SearchLimit < 10 || c.Catalog.SearchLimit > 25 {
		return fmt.Errorf("JIKAN_SEARCH_LIMIT must be between 10 and 25")
	}
	if c.Catalog.RequestsPerSecond <= 0 {
		return fmt.Errorf("JIKAN_RATE_LIMIT must be positive")
	}
	if c.Catalog.BreakerFailureRatio <= 0 || c.Catalog.BreakerFailureRatio > 1 {
		return fmt.Errorf("JIKAN_BREAKER_RATIO must be in (0, 1]")
	}
	return nil
}

func (c *Config) validateSimilarity() error {
	if !validSimilarityProviders[c.Similarity.Provider] {
		return fmt.Errorf("SIMILARITY_PROVIDER must be one of: huggingface, none")
	}
	if c.Similarity.Provider == "none" {
		return nil
	}
	if _, err := url.Parse(c.Similarity.BaseURL); err != nil || c.Similarity.BaseURL == "" {
		return fmt.Errorf("HF_BASE_URL is invalid")
	}
	if !validSimilarityTasks[c.Similarity.Task] {
		return fmt.Errorf("HF_TASK must be one of: sentence-similarity, feature-extraction")
	}
	if c.Similarity.MaxRetries < 0 || c.Similarity.MaxRetries > 5 {
		return fmt.Errorf("HF_MAX_RETRIES must be between 0 and 5")
	}
	return nil
}

func (c *Config) validateRanker() error {
	if !validRankerProviders[c.Ranker.Provider] {
		return fmt.Errorf("RANKER_PROVIDER must be one of: openai, gemini, none")
	}
	if c.Ranker.Temperature < 0 || c.Ranker.Temperature > 2 {
		return fmt.Errorf("RANKER_TEMPERATURE must be between 0 and 2")
	}
	if c.Ranker.Provider != "none" && c.Ranker.MaxTokens < 1 {
		return fmt.Errorf("RANKER_MAX_TOKENS must be positive")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MaxSeeds < 1 || r.MaxResults < 1 || r.EnrichConcurrency < 1 {
		return fmt.Errorf("RECOMMEND_MAX_SEEDS, RECOMMEND_MAX_RESULTS and RECOMMEND_ENRICH_CONCURRENCY must be positive")
	}
	if r.MinEnriched < 0 || r.MinFiltered < 0 {
		return errors.New("recommend.min_enriched and recommend.min_filtered must not be negative")
	}
	if r.SimilarityWeight < 0 || r.GenreWeight < 0 || r.PopularityWeight < 0 {
		return errors.New("recommend weights must not be negative")
	}
	if r.PopularitySpan <= 0 {
		return errors.New("recommend.popularity_span must be positive")
	}
	for _, v := range []float64{r.StrongTopScore, r.StrictThreshold, r.RelaxedThreshold} {
		if v < 0 || v > 1 {
			return errors.New("recommend thresholds must be within [0, 1]")
		}
	}
	return nil
}

func (c *Config) validateTrending() error {
	if c.Trending.TopLimit < 1 || c.Trending.TopLimit > 25 {
		return fmt.Errorf("TRENDING_TOP_LIMIT must be between 1 and 25")
	}
	if c.Trending.CategoryLimit < 1 || c.Trending.CategoryLimit > 25 {
		return fmt.Errorf("TRENDING_CATEGORY_LIMIT must be between 1 and 25")
	}
	if c.Trending.JanitorInterval <= 0 {
		return fmt.Errorf("TRENDING_JANITOR_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateHTTPURL checks scheme and host. Paths are allowed because the
// Jikan base URL carries its API version.
func validateHTTPURL(rawURL, fieldName string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsed.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters", fieldName)
	}
	return nil
}
