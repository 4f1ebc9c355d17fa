// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package models

import "time"

// Recommendation is one ranked result returned by the recommendations endpoint.
type Recommendation struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Synopsis   string   `json:"synopsis"`
	Genres     []string `json:"genres"`
	Score      *float64 `json:"score,omitempty"`      // 2 decimals
	Image      string   `json:"image"`
	URL        string   `json:"url,omitempty"`
	Similarity *float64 `json:"similarity,omitempty"` // 3 decimals, diagnostic
}

// TrendingItem is an entry in the top-anime listing.
type TrendingItem struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Synopsis string   `json:"synopsis,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	Image    string   `json:"image,omitempty"`
	URL      string   `json:"url,omitempty"`
	Genres   []string `json:"genres"`
}

// TrendingList wraps the top-anime listing.
type TrendingList struct {
	Items []TrendingItem `json:"items"`
}

// CategoryItem is an entry in a category listing.
type CategoryItem struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Synopsis *string  `json:"synopsis"`
	Score    *float64 `json:"score"`
	Year     *int     `json:"year,omitempty"`
	Status   string   `json:"status,omitempty"`
	Image    string   `json:"image,omitempty"`
	Genres   []string `json:"genres"`
	URL      string   `json:"url,omitempty"`
}

// Pagination mirrors the catalog's paging block.
type Pagination struct {
	CurrentPage     int  `json:"current_page"`
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
}

// CategoryPage is one page of a category listing.
type CategoryPage struct {
	Data       []CategoryItem `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// BrowseQuery selects a page of the catalog's anime search endpoint.
type BrowseQuery struct {
	Status  string // airing, upcoming
	Type    string // movie
	OrderBy string // score, members
	Sort    string // asc, desc
	Genres  string // CSV of numeric genre IDs
	Page    int
	Limit   int
	SFW     bool
}

// AnimePage is one page of browse results from the catalog.
type AnimePage struct {
	Items      []AnimeRecord
	Pagination Pagination
}

// Feedback is a message submitted through the contact form.
type Feedback struct {
	ID        string    `json:"id"`
	Email     string    `json:"email" validate:"required,email,max=320"`
	Message   string    `json:"message" validate:"required,max=5000"`
	CreatedAt time.Time `json:"created_at"`
}
