// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/animerec/internal/models"
	"github.com/tomtom215/animerec/internal/recommend"
	"github.com/tomtom215/animerec/internal/trending"
)

// =====================================================
// Test doubles
// =====================================================

type fakeRecommender struct {
	mu     sync.Mutex
	result *recommend.Result
	err    error
	query  string
}

func (f *fakeRecommender) Recommend(_ context.Context, query string) (*recommend.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.query = query
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return &recommend.Result{Items: []models.Recommendation{}, Strategy: recommend.StrategyNone}, nil
	}
	return f.result, nil
}

type fakeTrending struct {
	top   models.TrendingList
	page  models.CategoryPage
	err   error
	query trending.Query
}

func (f *fakeTrending) Top(context.Context) models.TrendingList { return f.top }

func (f *fakeTrending) ByCategory(_ context.Context, q trending.Query) (models.CategoryPage, error) {
	f.query = q
	return f.page, f.err
}

type fakeAnime struct {
	records map[int]models.AnimeRecord
	err     error
}

func (f *fakeAnime) GetAnime(_ context.Context, id int) (models.AnimeRecord, error) {
	if f.err != nil {
		return models.AnimeRecord{}, f.err
	}
	return f.records[id], nil
}

type fakeFeedback struct {
	saved []models.Feedback
	err   error
}

func (f *fakeFeedback) Save(_ context.Context, fb models.Feedback) (models.Feedback, error) {
	if f.err != nil {
		return models.Feedback{}, f.err
	}
	fb.ID = "fb-1"
	f.saved = append(f.saved, fb)
	return fb, nil
}

type fakeBreaker string

func (b fakeBreaker) BreakerState() string { return string(b) }

// =====================================================
// Helpers
// =====================================================

type testDeps struct {
	recommender *fakeRecommender
	trending    *fakeTrending
	anime       *fakeAnime
	feedback    *fakeFeedback
}

func newTestDeps() *testDeps {
	return &testDeps{
		recommender: &fakeRecommender{},
		trending:    &fakeTrending{},
		anime:       &fakeAnime{records: map[int]models.AnimeRecord{}},
		feedback:    &fakeFeedback{},
	}
}

func (d *testDeps) dependencies() Dependencies {
	return Dependencies{
		Recommender: d.recommender,
		Trending:    d.trending,
		Anime:       d.anime,
		Feedback:    d.feedback,
		Providers:   []string{"huggingface", "lexical"},
		Version:     "test",
	}
}

// newTestServer routes through the full middleware stack with rate limiting
// disabled.
func newTestServer(t *testing.T, deps Dependencies) http.Handler {
	t.Helper()
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"*"}
	cfg.RateLimitDisabled = true
	return NewRouter(NewHandler(deps), NewChiMiddleware(cfg), nil).SetupChi()
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env testEnvelope
	body, _ := io.ReadAll(rec.Body)
	if len(body) > 0 {
		if err := json.Unmarshal(body, &env); err != nil {
			t.Fatalf("decode envelope: %v\nbody: %s", err, body)
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env testEnvelope, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v\ndata: %s", err, env.Data)
	}
}
