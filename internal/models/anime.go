// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package models

// AnimeRecord is a fully enriched catalog entry.
type AnimeRecord struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Synopsis string   `json:"synopsis,omitempty"`
	Score    *float64 `json:"score,omitempty"` // aggregate rating, roughly 1-10
	Genres   []string `json:"genres"`
	ImageURL string   `json:"image,omitempty"`
	URL      string   `json:"url,omitempty"`

	// LargeImageURL is the high resolution poster used by listings.
	LargeImageURL string `json:"large_image,omitempty"`

	// Extra detail fields, populated by detail and browse lookups only.
	Status string `json:"status,omitempty"`
	Year   int    `json:"year,omitempty"`
}

// HasScore reports whether the record carries a numeric aggregate score.
func (a *AnimeRecord) HasScore() bool {
	return a.Score != nil
}

// Text returns the text used for similarity scoring: the synopsis, or the
// title when the synopsis is empty.
func (a *AnimeRecord) Text() string {
	if a.Synopsis != "" {
		return a.Synopsis
	}
	return a.Title
}

// RecommendationSeed is a lightweight reference returned by the catalog's
// related-titles lookup. It must be enriched before scoring.
type RecommendationSeed struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url,omitempty"`
	ImageURL string `json:"image,omitempty"`
}

// Record converts a seed into a bare AnimeRecord with no synopsis, score or
// genres. Used to pad the candidate set when enrichment mostly fails.
func (s RecommendationSeed) Record() AnimeRecord {
	return AnimeRecord{
		ID:       s.ID,
		Title:    s.Title,
		URL:      s.URL,
		ImageURL: s.ImageURL,
		Genres:   []string{},
	}
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}
