// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package models defines the data types shared by the catalog client, the
// ranking pipeline and the HTTP API.
//
// Catalog types (AnimeRecord, RecommendationSeed) are built fresh for every
// request and treated as immutable once fetched. API types (Recommendation,
// TrendingItem, CategoryItem) are the JSON shapes returned to clients.
package models
