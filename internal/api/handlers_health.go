// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/animerec/internal/cache"
	"github.com/tomtom215/animerec/internal/middleware"
)

// HealthStatus is the payload of GET /health.
type HealthStatus struct {
	Status          string                     `json:"status"` // healthy or degraded
	Version         string                     `json:"version"`
	Uptime          float64                    `json:"uptime_seconds"`
	CatalogBreaker  string                     `json:"catalog_breaker,omitempty"`
	Providers       []string                   `json:"similarity_providers"`
	Ranker          string                     `json:"ranker,omitempty"`
	FeedbackEnabled bool                       `json:"feedback_enabled"`
	Caches          []cache.Stats              `json:"caches,omitempty"`
	Endpoints       []middleware.EndpointStats `json:"endpoints,omitempty"`
	Timestamp       time.Time                  `json:"timestamp"`
}

// Health handles health check requests.
//
// The service is degraded while the catalog circuit breaker is open: every
// pipeline stage then degrades to empty results.
//
// @Summary Get service health
// @Description Returns uptime, catalog breaker state, configured providers, cache statistics and endpoint latency summaries
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:          "healthy",
		Version:         h.version,
		Uptime:          time.Since(h.startTime).Seconds(),
		Providers:       h.providers,
		Ranker:          h.ranker,
		FeedbackEnabled: h.feedback != nil,
		Timestamp:       time.Now(),
	}
	if status.Providers == nil {
		status.Providers = []string{}
	}

	if h.breaker != nil {
		status.CatalogBreaker = h.breaker.BreakerState()
		if status.CatalogBreaker == "open" {
			status.Status = "degraded"
		}
	}

	for _, c := range h.caches {
		status.Caches = append(status.Caches, c.Stats())
	}

	if h.monitor != nil {
		status.Endpoints = h.monitor.GetStats()
	}

	NewResponseWriter(w, r).Success(status)
}
