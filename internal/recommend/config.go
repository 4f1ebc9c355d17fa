// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/animerec/internal/config"
)

// Config tunes the ranking pipeline.
type Config struct {
	// MaxSeeds caps how many related-title seeds are enriched.
	MaxSeeds int

	// MinEnriched is the candidate count below which raw seeds pad the set.
	MinEnriched int

	// MaxResults caps the returned list.
	MaxResults int

	// EnrichConcurrency bounds parallel detail lookups.
	EnrichConcurrency int

	// Blend weights.
	SimilarityWeight float64
	GenreWeight      float64
	PopularityWeight float64

	// PopularityFloor and PopularitySpan remap an aggregate score onto [0,1]:
	// (score - floor) / span, clamped.
	PopularityFloor float64
	PopularitySpan  float64

	// Quality filter. When the top score exceeds StrongTopScore the
	// StrictThreshold applies, otherwise RelaxedThreshold. The filter is
	// dropped if fewer than MinFiltered candidates survive it.
	StrongTopScore   float64
	StrictThreshold  float64
	RelaxedThreshold float64
	MinFiltered      int

	// RequestTimeout bounds the network work of one Recommend call. When it
	// expires the call still returns a lexically ranked list. Zero, the
	// default, disables it.
	RequestTimeout time.Duration
}

// DefaultConfig returns the standard pipeline settings.
func DefaultConfig() Config {
	return Config{
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
	}
}

// ConfigFrom converts the application configuration section.
func ConfigFrom(c config.RecommendConfig) Config {
	return Config{
		MaxSeeds:          c.MaxSeeds,
		MinEnriched:       c.MinEnriched,
		MaxResults:        c.MaxResults,
		EnrichConcurrency: c.EnrichConcurrency,
		SimilarityWeight:  c.SimilarityWeight,
		GenreWeight:       c.GenreWeight,
		PopularityWeight:  c.PopularityWeight,
		PopularityFloor:   c.PopularityFloor,
		PopularitySpan:    c.PopularitySpan,
		StrongTopScore:    c.StrongTopScore,
		StrictThreshold:   c.StrictThreshold,
		RelaxedThreshold:  c.RelaxedThreshold,
		MinFiltered:       c.MinFiltered,
		RequestTimeout:    c.RequestTimeout,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.MaxSeeds < 1 {
		return fmt.Errorf("max_seeds must be positive, got %d", c.MaxSeeds)
	}
	if c.MinEnriched < 0 {
		return fmt.Errorf("min_enriched must be non-negative, got %d", c.MinEnriched)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.EnrichConcurrency < 1 {
		return fmt.Errorf("enrich_concurrency must be positive, got %d", c.EnrichConcurrency)
	}
	if c.SimilarityWeight < 0 || c.GenreWeight < 0 || c.PopularityWeight < 0 {
		return fmt.Errorf("blend weights must be non-negative, got %.2f/%.2f/%.2f",
			c.SimilarityWeight, c.GenreWeight, c.PopularityWeight)
	}
	if c.PopularitySpan <= 0 {
		return fmt.Errorf("popularity_span must be positive, got %f", c.PopularitySpan)
	}
	for name, v := range map[string]float64{
		"strong_top_score":  c.StrongTopScore,
		"strict_threshold":  c.StrictThreshold,
		"relaxed_threshold": c.RelaxedThreshold,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %f", name, v)
		}
	}
	if c.MinFiltered < 0 {
		return fmt.Errorf("min_filtered must be non-negative, got %d", c.MinFiltered)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must be non-negative, got %v", c.RequestTimeout)
	}
	return nil
}
