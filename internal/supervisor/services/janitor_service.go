// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultJanitorInterval is used when no interval is configured.
const DefaultJanitorInterval = time.Minute

// SweepableCache drops expired entries. *cache.Cache implements it.
type SweepableCache interface {
	Name() string
	Sweep() int
}

// CacheJanitorService periodically sweeps expired entries out of the
// listing caches so memory tracks live entries rather than peak traffic.
type CacheJanitorService struct {
	caches   []SweepableCache
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitorService creates a janitor over caches.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheJanitorService(caches []SweepableCache, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	return &CacheJanitorService{
		caches:   caches,
		interval: interval,
		logger:   logger.With().Str("service", "cache-janitor").Logger(),
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	s.logger.Info().
		Int("caches", len(s.caches)).
		Dur("interval", s.interval).
		Msg("cache janitor starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache janitor shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.SweepOnce()
		}
	}
}

// SweepOnce sweeps every cache and returns the number of entries removed.
func (s *CacheJanitorService) SweepOnce() int {
	total := 0
	for _, c := range s.caches {
		removed := c.Sweep()
		if removed > 0 {
			s.logger.Debug().Str("cache", c.Name()).Int("removed", removed).Msg("expired entries swept")
		}
		total += removed
	}
	return total
}

// String names the service in suture events.
func (s *CacheJanitorService) String() string {
	return s.name
}
