// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package trending

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/animerec/internal/cache"
	"github.com/tomtom215/animerec/internal/config"
	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/models"
)

// Category names accepted by ByCategory. Anything else lists by score.
const (
	CategoryAiring   = "airing"
	CategoryMovie    = "movie"
	CategoryUpcoming = "upcoming"
	CategoryPopular  = "popular"
	CategoryTop      = "top"
)

// Cache names, also used as metric labels.
const (
	TopCacheName      = "trending_top"
	CategoryCacheName = "trending_category"
)

// Catalog is the subset of the catalog client used for listings.
type Catalog interface {
	TopAnime(ctx context.Context, limit int) ([]models.AnimeRecord, error)
	BrowseAnime(ctx context.Context, q models.BrowseQuery) (models.AnimePage, error)
}

// Service serves trending listings.
type Service struct {
	catalog       Catalog
	topLimit      int
	categoryLimit int
	top           *cache.Cache
	categories    *cache.Cache
	group         singleflight.Group
	logger        zerolog.Logger
}

// NewService builds the service. clock may be nil.
func NewService(catalog Catalog, cfg config.TrendingConfig, clock cache.Clock) *Service {
	return &Service{
		catalog:       catalog,
		topLimit:      cfg.TopLimit,
		categoryLimit: cfg.CategoryLimit,
		top: cache.New(cache.Config{
			Name: TopCacheName, TTL: cfg.CacheTTL, Capacity: 4, Clock: clock,
		}),
		categories: cache.New(cache.Config{
			Name: CategoryCacheName, TTL: cfg.CategoryCacheTTL, Capacity: cfg.CacheCapacity, Clock: clock,
		}),
		logger: logging.WithComponent("trending"),
	}
}

// Caches returns the caches owned by the service so a janitor can sweep them.
func (s *Service) Caches() []*cache.Cache {
	return []*cache.Cache{s.top, s.categories}
}

// Top returns the top-ranked anime. Catalog failures yield an empty list
// and are not cached.
func (s *Service) Top(ctx context.Context) models.TrendingList {
	const key = "top"
	if v, ok := s.top.Get(key); ok {
		return v.(models.TrendingList)
	}

	// The lookup is shared by every waiting caller, so it must not end
	// when the caller that started it goes away.
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		records, err := s.catalog.TopAnime(shared, s.topLimit)
		if err != nil {
			return nil, err
		}
		list := models.TrendingList{Items: make([]models.TrendingItem, len(records))}
		for i := range records {
			list.Items[i] = toTrendingItem(&records[i])
		}
		s.top.Set(key, list)
		return list, nil
	})
	v, err := waitShared(ctx, ch)
	if err != nil {
		log := logging.Scoped(ctx, s.logger)
		log.Warn().Err(err).Msg("Top anime lookup failed, returning empty list")
		return models.TrendingList{Items: []models.TrendingItem{}}
	}
	return v.(models.TrendingList)
}

// Query selects a category listing page.
type Query struct {
	Category string
	Genres   string
	Page     int
}

// Normalize lower-cases the category and clamps the page to at least 1.
func (q Query) Normalize() Query {
	q.Category = strings.ToLower(strings.TrimSpace(q.Category))
	q.Genres = strings.TrimSpace(q.Genres)
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// BrowseQuery maps a category onto catalog filters.
func (q Query) BrowseQuery(limit int) models.BrowseQuery {
	bq := models.BrowseQuery{
		Genres:  q.Genres,
		Page:    q.Page,
		Limit:   limit,
		SFW:     true,
		OrderBy: "score",
		Sort:    "desc",
	}
	switch q.Category {
	case CategoryAiring:
		bq.Status = "airing"
	case CategoryMovie:
		bq.Type = "movie"
	case CategoryUpcoming:
		bq.Status = "upcoming"
		bq.OrderBy = "members"
	case CategoryPopular:
		bq.OrderBy = "members"
	}
	return bq
}

// ByCategory returns one page of a category listing. Catalog failures are
// returned to the caller.
func (s *Service) ByCategory(ctx context.Context, q Query) (models.CategoryPage, error) {
	q = q.Normalize()
	bq := q.BrowseQuery(s.categoryLimit)
	key := cache.GenerateKey("category", bq)

	if v, ok := s.categories.Get(key); ok {
		return v.(models.CategoryPage), nil
	}

	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		start := time.Now()
		page, err := s.catalog.BrowseAnime(shared, bq)
		if err != nil {
			return nil, err
		}
		out := models.CategoryPage{
			Data:       make([]models.CategoryItem, len(page.Items)),
			Pagination: page.Pagination,
		}
		for i := range page.Items {
			out.Data[i] = toCategoryItem(&page.Items[i])
		}
		s.categories.Set(key, out)
		log := logging.Scoped(shared, s.logger)
		log.Debug().
			Str("category", q.Category).
			Int("page", q.Page).
			Int("items", len(out.Data)).
			Dur("duration", time.Since(start)).
			Msg("Category listing fetched")
		return out, nil
	})
	v, err := waitShared(ctx, ch)
	if err != nil {
		return models.CategoryPage{}, fmt.Errorf("category %q page %d: %w", q.Category, q.Page, err)
	}
	return v.(models.CategoryPage), nil
}

// waitShared waits for a singleflight result or for ctx to end, whichever
// comes first.
func waitShared(ctx context.Context, ch <-chan singleflight.Result) (interface{}, error) {
	select {
	case r := <-ch:
		return r.Val, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func toTrendingItem(a *models.AnimeRecord) models.TrendingItem {
	genres := a.Genres
	if genres == nil {
		genres = []string{}
	}
	return models.TrendingItem{
		ID:       strconv.Itoa(a.ID),
		Title:    a.Title,
		Synopsis: a.Synopsis,
		Rating:   a.Score,
		Image:    a.ImageURL,
		URL:      a.URL,
		Genres:   genres,
	}
}

func toCategoryItem(a *models.AnimeRecord) models.CategoryItem {
	item := models.CategoryItem{
		ID:     a.ID,
		Title:  a.Title,
		Status: a.Status,
		Image:  a.LargeImageURL,
		Genres: a.Genres,
		URL:    a.URL,
	}
	if item.Genres == nil {
		item.Genres = []string{}
	}
	if a.Synopsis != "" {
		synopsis := a.Synopsis
		item.Synopsis = &synopsis
	}
	if a.Score != nil {
		score := roundTo2(*a.Score)
		item.Score = &score
	}
	if a.Year > 0 {
		year := a.Year
		item.Year = &year
	}
	return item
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
