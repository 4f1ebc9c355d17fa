// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/animerec/internal/models"
)

func TestTrending_Top(t *testing.T) {
	deps := newTestDeps()
	deps.trending.top = models.TrendingList{Items: []models.TrendingItem{
		{ID: "5114", Title: "Fullmetal Alchemist: Brotherhood", Genres: []string{"Action"}},
	}}
	srv := newTestServer(t, deps.dependencies())

	rec, env := do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/trending", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var list models.TrendingList
	decodeData(t, env, &list)
	if len(list.Items) != 1 || list.Items[0].ID != "5114" {
		t.Errorf("items = %+v", list.Items)
	}
}

func TestTrendingCategory_PassesQuery(t *testing.T) {
	deps := newTestDeps()
	deps.trending.page = models.CategoryPage{
		Data: []models.CategoryItem{{ID: 1, Title: "Cowboy Bebop", Genres: []string{}}},
		Pagination: models.Pagination{
			CurrentPage:     2,
			LastVisiblePage: 9,
			HasNextPage:     true,
		},
	}
	srv := newTestServer(t, deps.dependencies())

	rec, env := do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/trending/airing?genres=1,4&page=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	q := deps.trending.query
	if q.Category != "airing" || q.Genres != "1,4" || q.Page != 2 {
		t.Errorf("query = %+v", q)
	}

	var items []models.CategoryItem
	decodeData(t, env, &items)
	if len(items) != 1 {
		t.Fatalf("items = %+v", items)
	}

	p := env.Meta.Pagination
	if p == nil {
		t.Fatal("expected pagination meta")
	}
	if p.CurrentPage != 2 || p.LastVisiblePage != 9 || !p.HasMore || p.Count != 1 {
		t.Errorf("pagination = %+v", p)
	}
}

func TestTrendingCategory_PageDefaults(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want int
	}{
		{"missing", "/api/v1/trending/movie", 1},
		{"not a number", "/api/v1/trending/movie?page=abc", 1},
		{"zero", "/api/v1/trending/movie?page=0", 1},
		{"negative", "/api/v1/trending/movie?page=-3", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps()
			srv := newTestServer(t, deps.dependencies())

			rec, _ := do(t, srv, httptest.NewRequest(http.MethodGet, tt.url, nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if deps.trending.query.Page != tt.want {
				t.Errorf("page = %d, want %d", deps.trending.query.Page, tt.want)
			}
		})
	}
}

func TestTrendingCategory_InvalidParams(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"genres not numeric", "/api/v1/trending/airing?genres=action"},
		{"page too large", "/api/v1/trending/airing?page=1001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps()
			srv := newTestServer(t, deps.dependencies())

			rec, env := do(t, srv, httptest.NewRequest(http.MethodGet, tt.url, nil))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if env.Error == nil || env.Error.Code != ErrCodeValidationFailed {
				t.Errorf("error = %+v", env.Error)
			}
		})
	}
}

func TestTrendingCategory_CatalogFailure(t *testing.T) {
	deps := newTestDeps()
	deps.trending.err = errors.New("catalog down")
	srv := newTestServer(t, deps.dependencies())

	rec, env := do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/trending/popular", nil))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeExternalServiceFail {
		t.Errorf("error = %+v", env.Error)
	}
}
