// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/models"
)

// The methods in this file never surface errors. Failures are logged and
// collapse to "nothing found" so the ranking pipeline always proceeds.

// ResolveBase searches for query and picks the reference anime using
// SelectBase. It reports false when the search fails or finds nothing.
func (c *Client) ResolveBase(ctx context.Context, query string) (models.AnimeRecord, bool) {
	candidates, err := c.SearchAnime(ctx, query, c.searchLimit)
	if err != nil {
		log := logging.Scoped(ctx, c.logger)
		log.Warn().Err(err).Str("query", query).Msg("Base search failed")
		return models.AnimeRecord{}, false
	}
	return SelectBase(query, candidates)
}

// FetchSeeds returns the related-title seeds for id, or nil on failure.
func (c *Client) FetchSeeds(ctx context.Context, id int) []models.RecommendationSeed {
	seeds, err := c.GetRecommendations(ctx, id)
	if err != nil {
		log := logging.Scoped(ctx, c.logger)
		log.Warn().Err(err).Int("anime_id", id).Msg("Seed lookup failed")
		return nil
	}
	return seeds
}

// Enrich fetches full detail for one seed id.
func (c *Client) Enrich(ctx context.Context, id int) (models.AnimeRecord, bool) {
	rec, err := c.GetAnime(ctx, id)
	if err != nil {
		level := zerolog.WarnLevel
		if errors.Is(err, ErrNotFound) {
			level = zerolog.DebugLevel
		}
		log := logging.Scoped(ctx, c.logger)
		log.WithLevel(level).Err(err).Int("anime_id", id).Msg("Enrichment failed")
		return models.AnimeRecord{}, false
	}
	return rec, true
}

// SelectBase chooses the reference anime among search candidates. Policy in
// priority order:
//  1. title equals query, ignoring case
//  2. query is a substring of the title, ignoring case
//  3. the title's lower-cased first word is contained in the query
//  4. the first candidate
func SelectBase(query string, candidates []models.AnimeRecord) (models.AnimeRecord, bool) {
	if len(candidates) == 0 {
		return models.AnimeRecord{}, false
	}
	q := strings.ToLower(strings.TrimSpace(query))

	for i := range candidates {
		if strings.ToLower(candidates[i].Title) == q {
			return candidates[i], true
		}
	}
	for i := range candidates {
		if strings.Contains(strings.ToLower(candidates[i].Title), q) {
			return candidates[i], true
		}
	}
	for i := range candidates {
		fields := strings.Fields(strings.ToLower(candidates[i].Title))
		if len(fields) > 0 && strings.Contains(q, fields[0]) {
			return candidates[i], true
		}
	}
	return candidates[0], true
}
