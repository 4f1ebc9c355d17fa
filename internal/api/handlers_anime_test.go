// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/animerec/internal/catalog"
	"github.com/tomtom215/animerec/internal/models"
)

func TestAnime_Found(t *testing.T) {
	deps := newTestDeps()
	deps.anime.records[21] = models.AnimeRecord{ID: 21, Title: "One Piece", Genres: []string{"Adventure"}}
	srv := newTestServer(t, deps.dependencies())

	rec, env := do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/anime/21", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got models.AnimeRecord
	decodeData(t, env, &got)
	if got.ID != 21 || got.Title != "One Piece" {
		t.Errorf("record = %+v", got)
	}
}

func TestAnime_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"non-numeric id", "/api/v1/anime/abc", nil, http.StatusBadRequest, ErrCodeBadRequest},
		{"zero id", "/api/v1/anime/0", nil, http.StatusBadRequest, ErrCodeValidationFailed},
		{"not found", "/api/v1/anime/99999", catalog.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"wrapped not found", "/api/v1/anime/5", fmt.Errorf("lookup: %w", catalog.ErrNotFound), http.StatusNotFound, ErrCodeNotFound},
		{"catalog failure", "/api/v1/anime/5", errors.New("connection refused"), http.StatusBadGateway, ErrCodeExternalServiceFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps()
			deps.anime.err = tt.err
			srv := newTestServer(t, deps.dependencies())

			rec, env := do(t, srv, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if env.Success {
				t.Error("expected success=false")
			}
			if env.Error == nil || env.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantErr)
			}
		})
	}
}
