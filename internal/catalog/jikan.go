// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package catalog

import (
	"strconv"

	"github.com/tomtom215/animerec/internal/models"
)

// Wire types for the subset of the Jikan v4 schema that Animerec reads.

type jikanImageSet struct {
	ImageURL      string `json:"image_url"`
	LargeImageURL string `json:"large_image_url"`
}

type jikanImages struct {
	JPG  jikanImageSet `json:"jpg"`
	WebP jikanImageSet `json:"webp"`
}

type jikanNamed struct {
	Name string `json:"name"`
}

type jikanAnime struct {
	MalID    int          `json:"mal_id"`
	URL      string       `json:"url"`
	Title    string       `json:"title"`
	Synopsis *string      `json:"synopsis"`
	Score    *float64     `json:"score"`
	Status   string       `json:"status"`
	Year     *int         `json:"year"`
	Aired    jikanAired   `json:"aired"`
	Images   jikanImages  `json:"images"`
	Genres   []jikanNamed `json:"genres"`
}

type jikanAired struct {
	From *string `json:"from"`
}

type jikanRecommendation struct {
	Entry struct {
		MalID  int         `json:"mal_id"`
		URL    string      `json:"url"`
		Title  string      `json:"title"`
		Images jikanImages `json:"images"`
	} `json:"entry"`
}

type jikanPagination struct {
	CurrentPage     int  `json:"current_page"`
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
}

type jikanList[T any] struct {
	Data       []T              `json:"data"`
	Pagination *jikanPagination `json:"pagination,omitempty"`
}

type jikanSingle[T any] struct {
	Data *T `json:"data"`
}

// image prefers the JPG poster and falls back to WebP.
func (i jikanImages) image() string {
	if i.JPG.ImageURL != "" {
		return i.JPG.ImageURL
	}
	return i.WebP.ImageURL
}

// largeImage prefers the large WebP poster and falls back to large JPG.
func (i jikanImages) largeImage() string {
	if i.WebP.LargeImageURL != "" {
		return i.WebP.LargeImageURL
	}
	return i.JPG.LargeImageURL
}

func (a *jikanAnime) toRecord() models.AnimeRecord {
	rec := models.AnimeRecord{
		ID:            a.MalID,
		Title:         a.Title,
		Score:         a.Score,
		URL:           a.URL,
		ImageURL:      a.Images.image(),
		LargeImageURL: a.Images.largeImage(),
		Status:        a.Status,
		Genres:        make([]string, 0, len(a.Genres)),
	}
	if a.Synopsis != nil {
		rec.Synopsis = *a.Synopsis
	}
	for _, g := range a.Genres {
		if g.Name != "" {
			rec.Genres = append(rec.Genres, g.Name)
		}
	}
	switch {
	case a.Year != nil:
		rec.Year = *a.Year
	case a.Aired.From != nil && len(*a.Aired.From) >= 4:
		if y, err := strconv.Atoi((*a.Aired.From)[:4]); err == nil {
			rec.Year = y
		}
	}
	return rec
}

func (r *jikanRecommendation) toSeed() models.RecommendationSeed {
	return models.RecommendationSeed{
		ID:       r.Entry.MalID,
		Title:    r.Entry.Title,
		URL:      r.Entry.URL,
		ImageURL: r.Entry.Images.image(),
	}
}

func (p *jikanPagination) toModel(fallbackPage int) models.Pagination {
	if p == nil {
		return models.Pagination{CurrentPage: fallbackPage, LastVisiblePage: 1}
	}
	out := models.Pagination{
		CurrentPage:     p.CurrentPage,
		LastVisiblePage: p.LastVisiblePage,
		HasNextPage:     p.HasNextPage,
	}
	if out.CurrentPage == 0 {
		out.CurrentPage = fallbackPage
	}
	if out.LastVisiblePage == 0 {
		out.LastVisiblePage = 1
	}
	return out
}
