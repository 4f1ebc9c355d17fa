// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package catalog

import (
	"context"
	"net/http"
	"testing"

	"github.com/tomtom215/animerec/internal/models"
)

func titles(names ...string) []models.AnimeRecord {
	out := make([]models.AnimeRecord, len(names))
	for i, n := range names {
		out[i] = models.AnimeRecord{ID: i + 1, Title: n}
	}
	return out
}

func TestSelectBase(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		candidates []models.AnimeRecord
		wantID     int
		wantOK     bool
	}{
		{"no candidates", "naruto", nil, 0, false},
		{"exact match wins over earlier substring", "Naruto", titles("Naruto: Shippuuden", "NARUTO"), 2, true},
		{"substring match", "shippuuden", titles("Boruto", "Naruto: Shippuuden"), 2, true},
		{"first word of title in query", "attack titan season 2", titles("Bleach", "Attack on Titan"), 2, true},
		{"fallback to first", "zzz", titles("Bleach", "One Piece"), 1, true},
		{"query is trimmed", "  bleach ", titles("One Piece", "Bleach"), 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectBase(tt.query, tt.candidates)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("picked %d (%q), want %d", got.ID, got.Title, tt.wantID)
			}
		})
	}
}

func TestResolveBase_EmptySearch(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	if _, ok := c.ResolveBase(context.Background(), "zzzznonexistentseries"); ok {
		t.Error("expected no base for empty search")
	}
}

func TestResolveBase_FailureIsTolerated(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	if _, ok := c.ResolveBase(context.Background(), "naruto"); ok {
		t.Error("expected no base when search fails")
	}
}

func TestFetchSeedsAndEnrich_Tolerant(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/anime/1":
			_, _ = w.Write([]byte(`{"data":{"mal_id":1,"title":"Cowboy Bebop","genres":[{"name":"Sci-Fi"}]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	if seeds := c.FetchSeeds(ctx, 7); len(seeds) != 0 {
		t.Errorf("seeds = %v, want empty", seeds)
	}
	rec, ok := c.Enrich(ctx, 1)
	if !ok || rec.Title != "Cowboy Bebop" {
		t.Errorf("Enrich(1) = %+v, %v", rec, ok)
	}
	if _, ok := c.Enrich(ctx, 2); ok {
		t.Error("Enrich(2) should fail")
	}
}
