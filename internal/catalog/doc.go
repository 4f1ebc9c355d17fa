// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package catalog is the client for the Jikan v4 anime metadata API.
//
// Every call goes through the same resilience stack:
//
//  1. an outbound token-bucket limiter (golang.org/x/time/rate) that keeps
//     the process under Jikan's published request rate
//  2. a circuit breaker (sony/gobreaker) that stops hammering Jikan while it
//     is failing and exports its state as Prometheus metrics
//  3. bounded retries with linear backoff (backoff x attempt) for network
//     errors, 5xx responses and 429 responses; Retry-After is honoured
//
// Any other 4xx is definitive and not retried. A 404 on a detail lookup is
// reported as ErrNotFound.
//
// The typed methods (SearchAnime, GetRecommendations, GetAnime, TopAnime,
// BrowseAnime) return errors. The ranking pipeline uses the tolerant
// wrappers ResolveBase, FetchSeeds and Enrich instead, which log failures
// and return empty results so the pipeline always proceeds with whatever
// data it has.
package catalog
