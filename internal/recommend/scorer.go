// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import "github.com/tomtom215/animerec/internal/models"

// BlendedScorer combines text similarity, genre overlap and popularity.
type BlendedScorer struct {
	SimilarityWeight float64
	GenreWeight      float64
	PopularityWeight float64
	PopularityFloor  float64
	PopularitySpan   float64
}

// NewBlendedScorer builds a scorer from the pipeline config.
func NewBlendedScorer(cfg *Config) BlendedScorer {
	return BlendedScorer{
		SimilarityWeight: cfg.SimilarityWeight,
		GenreWeight:      cfg.GenreWeight,
		PopularityWeight: cfg.PopularityWeight,
		PopularityFloor:  cfg.PopularityFloor,
		PopularitySpan:   cfg.PopularitySpan,
	}
}

// Score returns the blended score for candidate given its text similarity
// to base.
func (s BlendedScorer) Score(base, candidate *models.AnimeRecord, similarity float64) float64 {
	return s.SimilarityWeight*similarity +
		s.GenreWeight*GenreJaccard(base.Genres, candidate.Genres) +
		s.PopularityWeight*s.popularity(candidate)
}

func (s BlendedScorer) popularity(a *models.AnimeRecord) float64 {
	if a.Score == nil {
		return 0
	}
	return clamp01((*a.Score - s.PopularityFloor) / s.PopularitySpan)
}

// GenreJaccard is |a ∩ b| / |a ∪ b| over genre names. The union is treated
// as at least 1, so two empty sets score 0.
func GenreJaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, g := range a {
		setA[g] = struct{}{}
	}
	union := make(map[string]struct{}, len(a)+len(b))
	for g := range setA {
		union[g] = struct{}{}
	}

	intersection := 0
	seenB := make(map[string]struct{}, len(b))
	for _, g := range b {
		if _, dup := seenB[g]; dup {
			continue
		}
		seenB[g] = struct{}{}
		union[g] = struct{}{}
		if _, ok := setA[g]; ok {
			intersection++
		}
	}

	return float64(intersection) / float64(max(len(union), 1))
}

// NormalizedPopularity maps an aggregate score onto [0, 1] with the
// standard (score - 4) / 6 remap. A missing score yields 0.
func NormalizedPopularity(score *float64) float64 {
	if score == nil {
		return 0
	}
	return clamp01((*score - 4) / 6)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
