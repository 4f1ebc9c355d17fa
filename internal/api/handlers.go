// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"context"
	"time"

	"github.com/tomtom215/animerec/internal/cache"
	"github.com/tomtom215/animerec/internal/middleware"
	"github.com/tomtom215/animerec/internal/models"
	"github.com/tomtom215/animerec/internal/recommend"
	"github.com/tomtom215/animerec/internal/trending"
)

// Recommender runs the ranking pipeline. *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, query string) (*recommend.Result, error)
}

// TrendingProvider serves the trending listings. *trending.Service implements it.
type TrendingProvider interface {
	Top(ctx context.Context) models.TrendingList
	ByCategory(ctx context.Context, q trending.Query) (models.CategoryPage, error)
}

// AnimeLookup fetches one anime by id. *catalog.Client implements it.
type AnimeLookup interface {
	GetAnime(ctx context.Context, id int) (models.AnimeRecord, error)
}

// FeedbackStore persists contact-form messages. *feedback.Store implements it.
type FeedbackStore interface {
	Save(ctx context.Context, fb models.Feedback) (models.Feedback, error)
}

// BreakerReporter exposes the catalog circuit breaker state.
type BreakerReporter interface {
	BreakerState() string
}

// Dependencies groups everything the handlers need. Feedback may be nil
// when the feature is disabled; Monitor, Breaker and Caches are optional.
type Dependencies struct {
	Recommender Recommender
	Trending    TrendingProvider
	Anime       AnimeLookup
	Feedback    FeedbackStore
	Breaker     BreakerReporter
	Monitor     *middleware.PerformanceMonitor
	Caches      []*cache.Cache

	// Providers lists the similarity providers in fallback order.
	Providers []string
	// Ranker names the full-ranking model, empty when disabled.
	Ranker  string
	Version string
}

// Handler holds the HTTP handlers.
type Handler struct {
	recommender Recommender
	trending    TrendingProvider
	anime       AnimeLookup
	feedback    FeedbackStore
	breaker     BreakerReporter
	monitor     *middleware.PerformanceMonitor
	caches      []*cache.Cache
	providers   []string
	ranker      string
	version     string
	startTime   time.Time
}

// NewHandler creates the handler set.
func NewHandler(deps Dependencies) *Handler {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		recommender: deps.Recommender,
		trending:    deps.Trending,
		anime:       deps.Anime,
		feedback:    deps.Feedback,
		breaker:     deps.Breaker,
		monitor:     deps.Monitor,
		caches:      deps.Caches,
		providers:   deps.Providers,
		ranker:      deps.Ranker,
		version:     version,
		startTime:   time.Now(),
	}
}
