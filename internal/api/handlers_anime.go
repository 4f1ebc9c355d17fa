// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/animerec/internal/catalog"
)

// Anime handles GET /api/v1/anime/{id}.
//
// @Summary Anime detail
// @Description Returns the catalog record for one anime
// @Tags Anime
// @Produce json
// @Param id path int true "Catalog anime ID"
// @Success 200 {object} APIResponse{data=models.AnimeRecord} "Anime record"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Unknown ID"
// @Failure 502 {object} APIResponse "Catalog unavailable"
// @Router /anime/{id} [get]
func (h *Handler) Anime(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		rw.BadRequest("Anime ID must be an integer")
		return
	}
	req := AnimeRequest{ID: id}
	if apiErr := validateRequest(&req); apiErr != nil {
		writeValidationError(rw, apiErr)
		return
	}

	record, err := h.anime.GetAnime(r.Context(), req.ID)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		rw.NotFound("Anime not found")
	case err != nil:
		rw.ExternalServiceError("catalog", err)
	default:
		rw.Success(record)
	}
}
