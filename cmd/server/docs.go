// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package main provides the Animerec HTTP server
//
// @title Animerec API
// @version 1.0
// @description Anime discovery and recommendation service backed by the Jikan catalog.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description
// @description ## Error Responses
// @description
// @description All responses use the same envelope:
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {"code": "VALIDATION_FAILED", "message": "...", "details": []},
// @description   "meta": {"timestamp": "2026-01-01T00:00:00Z", "request_id": "..."}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/animerec/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health and status
//
// @tag.name Recommendations
// @tag.description Similar-title ranking
//
// @tag.name Trending
// @tag.description Top and category listings
//
// @tag.name Anime
// @tag.description Single title detail
//
// @tag.name Feedback
// @tag.description Contact form submissions
package main
