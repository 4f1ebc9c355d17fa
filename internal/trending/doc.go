// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package trending serves the top-anime listing and the category listings
// (airing, movie, upcoming, popular) from the catalog, with short-lived
// caching. Concurrent cache misses for the same key share one upstream call.
package trending
