// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import (
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/animerec/internal/models"
)

// Scored pairs a candidate with its final score.
type Scored struct {
	Anime models.AnimeRecord
	Score float64
}

// PadWithSeeds appends raw seed records, in seed order, until enriched
// holds at least minCount entries or the seeds run out. Seeds whose id is
// already present are skipped.
func PadWithSeeds(enriched []models.AnimeRecord, seeds []models.RecommendationSeed, minCount int) []models.AnimeRecord {
	if len(enriched) >= minCount {
		return enriched
	}
	present := make(map[int]struct{}, minCount)
	for i := range enriched {
		present[enriched[i].ID] = struct{}{}
	}
	out := make([]models.AnimeRecord, 0, minCount)
	out = append(out, enriched...)
	for i := 0; i < len(seeds) && len(out) < minCount; i++ {
		if _, ok := present[seeds[i].ID]; ok {
			continue
		}
		present[seeds[i].ID] = struct{}{}
		out = append(out, seeds[i].Record())
	}
	return out
}

// Dedup removes repeated ids, keeping the first occurrence.
func Dedup(records []models.AnimeRecord) []models.AnimeRecord {
	seen := make(map[int]struct{}, len(records))
	out := make([]models.AnimeRecord, 0, len(records))
	for i := range records {
		if _, ok := seen[records[i].ID]; ok {
			continue
		}
		seen[records[i].ID] = struct{}{}
		out = append(out, records[i])
	}
	return out
}

// QualityFilter drops candidates scoring at or below the adaptive
// threshold. sorted must be in descending score order. If fewer than
// cfg.MinFiltered survive, sorted is returned unchanged.
func QualityFilter(sorted []Scored, cfg *Config) []Scored {
	if len(sorted) == 0 {
		return sorted
	}
	threshold := cfg.RelaxedThreshold
	if sorted[0].Score > cfg.StrongTopScore {
		threshold = cfg.StrictThreshold
	}

	kept := make([]Scored, 0, len(sorted))
	for _, s := range sorted {
		if s.Score > threshold {
			kept = append(kept, s)
		}
	}
	if len(kept) < cfg.MinFiltered {
		return sorted
	}
	return kept
}

// ToRecommendation maps a scored candidate to the response shape.
func ToRecommendation(s *Scored) models.Recommendation {
	a := &s.Anime
	rec := models.Recommendation{
		ID:         strconv.Itoa(a.ID),
		Title:      a.Title,
		Synopsis:   a.Synopsis,
		Genres:     a.Genres,
		Image:      a.ImageURL,
		URL:        a.URL,
		Similarity: models.Float64Ptr(round(s.Score, 3)),
	}
	if rec.Genres == nil {
		rec.Genres = []string{}
	}
	if a.Score != nil {
		rec.Score = models.Float64Ptr(round(*a.Score, 2))
	}
	if rec.Image == "" {
		rec.Image = PlaceholderImage(a.Title)
	}
	return rec
}

// PlaceholderImage returns the deterministic placeholder cover for title.
func PlaceholderImage(title string) string {
	return "/placeholder.svg?height=288&width=512&query=anime%20cover%20" + encodeURIComponent(title)
}

// encodeURIComponent percent-encodes every byte except ASCII letters,
// digits and - _ . ! ~ * ' ( ).
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isURIUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// round rounds half away from zero to the given number of decimals.
func round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
