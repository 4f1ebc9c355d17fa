// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Request structs validated with go-playground/validator tags before the
// handlers act on them.
package api

// RecommendationsRequest holds the query of /recommendations.
// An empty Anime is valid and yields an empty list.
type RecommendationsRequest struct {
	Anime string `json:"anime" validate:"max=200"`
}

// CategoryRequest holds the parameters of /trending/{category}.
//
// Fields:
//   - Category: airing, movie, upcoming, popular, top (anything else lists by score)
//   - Genres: comma-separated numeric genre IDs
//   - Page: 1-based page (1-1000)
type CategoryRequest struct {
	Category string `json:"category" validate:"max=32"`
	Genres   string `json:"genres" validate:"omitempty,genrecsv"`
	Page     int    `json:"page" validate:"min=1,max=1000"`
}

// AnimeRequest holds the path parameter of /anime/{id}.
type AnimeRequest struct {
	ID int `json:"id" validate:"min=1"`
}

// FeedbackRequest is the body of POST /feedback, as JSON or form fields.
type FeedbackRequest struct {
	Email   string `json:"email" validate:"required,email,max=320"`
	Message string `json:"message" validate:"required,max=5000"`
}
