// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tomtom215/animerec/internal/api"
	"github.com/tomtom215/animerec/internal/cache"
	"github.com/tomtom215/animerec/internal/catalog"
	"github.com/tomtom215/animerec/internal/config"
	"github.com/tomtom215/animerec/internal/feedback"
	"github.com/tomtom215/animerec/internal/llm"
	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/recommend"
	"github.com/tomtom215/animerec/internal/similarity"
	"github.com/tomtom215/animerec/internal/supervisor/services"
	"github.com/tomtom215/animerec/internal/trending"
)

// components holds the long-lived domain objects wired from config.
type components struct {
	Catalog    *catalog.Client
	Similarity *similarity.Chain
	Ranker     *recommend.LLMRanker
	Engine     *recommend.Engine
	Trending   *trending.Service
	Feedback   *feedback.Store

	closers []io.Closer
}

// initComponents builds the catalog client, the similarity chain, the
// optional LLM ranker, the recommendation engine, the trending service and
// the optional feedback store.
func initComponents(ctx context.Context, cfg *config.Config) (*components, error) {
	c := &components{}

	c.Catalog = catalog.NewClient(cfg.Catalog)

	c.Similarity = initSimilarity(cfg.Similarity)
	logging.Info().Strs("providers", c.Similarity.Names()).Msg("Similarity providers configured")

	client, err := llm.New(ctx, cfg.Ranker, nil)
	switch {
	case errors.Is(err, llm.ErrNoCredential):
		logging.Warn().Str("provider", cfg.Ranker.Provider).Msg("Ranker API key missing, full ranking disabled")
	case err != nil:
		return nil, fmt.Errorf("ranker: %w", err)
	case client != nil:
		if closer, ok := client.(io.Closer); ok {
			c.closers = append(c.closers, closer)
		}
		c.Ranker = recommend.NewLLMRanker(client)
		logging.Info().Str("ranker", c.Ranker.Name()).Msg("Full ranking enabled")
	default:
		logging.Info().Msg("Full ranking disabled (RANKER_PROVIDER=none)")
	}

	c.Engine, err = recommend.NewEngine(
		recommend.ConfigFrom(cfg.Recommend),
		c.Catalog,
		c.Similarity,
		recommend.WithRanker(c.Ranker),
	)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Trending = trending.NewService(c.Catalog, cfg.Trending, cache.SystemClock{})

	if cfg.Feedback.Enabled {
		c.Feedback, err = feedback.Open(cfg.Feedback.Path)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("feedback store: %w", err)
		}
		c.closers = append(c.closers, c.Feedback)
	} else {
		logging.Info().Msg("Feedback disabled (FEEDBACK_ENABLED=false)")
	}

	return c, nil
}

// initSimilarity chains the remote provider ahead of the lexical fallback.
// Without a token only lexical scoring is used.
func initSimilarity(cfg config.SimilarityConfig) *similarity.Chain {
	if cfg.APIToken == "" || cfg.Provider == "none" {
		return similarity.NewChain(similarity.NewLexical())
	}
	return similarity.NewChain(similarity.NewHuggingFace(cfg, nil), similarity.NewLexical())
}

// feedbackStore avoids handing a typed nil to the handler interface.
func (c *components) feedbackStore() api.FeedbackStore {
	if c.Feedback == nil {
		return nil
	}
	return c.Feedback
}

func (c *components) rankerName() string {
	if c.Ranker == nil {
		return ""
	}
	return c.Ranker.Name()
}

// Close releases the components in reverse order of creation.
func (c *components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing component")
		}
	}
	c.closers = nil
}

// sweepables adapts the trending caches for the janitor.
func sweepables(caches []*cache.Cache) []services.SweepableCache {
	out := make([]services.SweepableCache, 0, len(caches))
	for _, c := range caches {
		out = append(out, c)
	}
	return out
}
