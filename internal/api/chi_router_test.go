// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRouter_UnknownRoute(t *testing.T) {
	srv := newTestServer(t, newTestDeps().dependencies())

	rec, env := do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, newTestDeps().dependencies())

	rec, env := do(t, srv, httptest.NewRequest(http.MethodDelete, "/api/v1/trending", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestRouter_RequestIDPropagates(t *testing.T) {
	srv := newTestServer(t, newTestDeps().dependencies())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trending", nil)
	req.Header.Set("X-Request-ID", "req-abc")
	rec, env := do(t, srv, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-abc" {
		t.Errorf("response header = %q, want req-abc", got)
	}
	if env.Meta == nil || env.Meta.RequestID != "req-abc" {
		t.Errorf("meta = %+v, want request_id req-abc", env.Meta)
	}
}

func TestRouter_SecurityHeadersOnAPI(t *testing.T) {
	srv := newTestServer(t, newTestDeps().dependencies())

	rec, _ := do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t, newTestDeps().dependencies())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/feedback", nil)
	req.Header.Set("Origin", "https://anime.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected Access-Control-Allow-Origin on preflight")
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, newTestDeps().dependencies())

	do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/trending", nil))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("expected api_requests_total in metrics output")
	}
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	deps := newTestDeps()
	d := deps.dependencies()
	d.Trending = nil // Trending handler dereferences a nil interface
	srv := newTestServer(t, d)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/trending", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
