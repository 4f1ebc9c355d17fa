// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package metrics declares the Prometheus collectors exported on /metrics.
//
// Collectors are registered with the default registry through promauto at
// package initialisation. Callers use the Record* helpers rather than the
// vectors directly so label sets stay consistent.
//
// # Metric Families
//
//   - api_*: inbound HTTP requests (middleware.PrometheusMetrics)
//   - catalog_*: outbound Jikan calls, retries and outcomes
//   - circuit_breaker_*: breaker state around the catalog
//   - recommend_*: pipeline outcomes, strategy selection and latency
//   - similarity_*: provider fallbacks
//   - cache_*: hit/miss/eviction counters per named cache
//   - feedback_*: stored feedback messages
package metrics
