// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/animerec/internal/models"
	"github.com/tomtom215/animerec/internal/recommend"
)

func TestRecommendations_ReturnsRankedItems(t *testing.T) {
	deps := newTestDeps()
	score := 8.7
	deps.recommender.result = &recommend.Result{
		Items: []models.Recommendation{
			{ID: "20", Title: "Naruto Shippuden", Genres: []string{"Action"}, Score: &score, Image: "https://img/20.jpg"},
			{ID: "1735", Title: "Boruto", Genres: []string{"Action"}, Image: "https://img/1735.jpg"},
		},
		Base:       &models.AnimeRecord{ID: 20, Title: "Naruto"},
		Strategy:   "lexical",
		Candidates: 14,
	}
	srv := newTestServer(t, deps.dependencies())

	rec, env := do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?anime=Naruto", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !env.Success {
		t.Fatal("expected success envelope")
	}
	if deps.recommender.query != "Naruto" {
		t.Errorf("engine query = %q, want Naruto", deps.recommender.query)
	}

	var items []models.Recommendation
	decodeData(t, env, &items)
	if len(items) != 2 || items[0].Title != "Naruto Shippuden" {
		t.Errorf("items = %+v", items)
	}

	if env.Meta == nil || env.Meta.Recommend == nil {
		t.Fatal("expected recommend meta")
	}
	m := env.Meta.Recommend
	if m.Strategy != "lexical" || m.Candidates != 14 || m.BaseID != 20 || m.BaseTitle != "Naruto" {
		t.Errorf("recommend meta = %+v", m)
	}
	if env.Meta.RequestID == "" {
		t.Error("expected request_id in meta")
	}
}

func TestRecommendations_EmptyQueryYieldsEmptyArray(t *testing.T) {
	deps := newTestDeps()
	srv := newTestServer(t, deps.dependencies())

	rec, env := do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if string(env.Data) != "[]" {
		t.Errorf("data = %s, want []", env.Data)
	}
	if env.Meta.Recommend.Strategy != recommend.StrategyNone {
		t.Errorf("strategy = %q, want none", env.Meta.Recommend.Strategy)
	}
}

func TestRecommendations_QueryTooLong(t *testing.T) {
	deps := newTestDeps()
	srv := newTestServer(t, deps.dependencies())

	long := strings.Repeat("a", 201)
	rec, env := do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?anime="+long, nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeValidationFailed {
		t.Errorf("error = %+v, want VALIDATION_FAILED", env.Error)
	}
	if deps.recommender.query != "" {
		t.Error("engine should not be called for invalid input")
	}
}

func TestRecommendations_PipelineTimeoutYieldsEmptyArray(t *testing.T) {
	deps := newTestDeps()
	deps.recommender.err = context.DeadlineExceeded
	srv := newTestServer(t, deps.dependencies())

	rec, env := do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?anime=Bleach", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if string(env.Data) != "[]" {
		t.Errorf("data = %s, want []", env.Data)
	}
}

func TestRecommendations_ClientGoneWritesNothing(t *testing.T) {
	deps := newTestDeps()
	deps.recommender.err = context.Canceled
	h := NewHandler(deps.dependencies())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?anime=Bleach", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.Recommendations(rec, req)

	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %s", rec.Body.String())
	}
}
