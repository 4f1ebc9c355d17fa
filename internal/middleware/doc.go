// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - Request ID: UUID-based request tracking, populating the logging context
  - Prometheus Metrics: request count, latency and in-flight gauge
  - Performance Monitor: sliding window of request latencies with
    percentile summaries and slow-request logging

All middleware use the http.HandlerFunc signature or the chi
func(http.Handler) http.Handler signature. Metric and monitor labels use the
chi route pattern (for example /api/v1/anime/{id}) when one is available so
label cardinality stays bounded.

Usage Example:

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
	    return middleware.PrometheusMetrics(next.ServeHTTP)
	})
	r.Use(monitor.Middleware)
*/
package middleware
