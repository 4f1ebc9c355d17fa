// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/animerec/internal/trending"
)

// Trending handles GET /api/v1/trending.
//
// @Summary Top anime
// @Description Returns the catalog's top-ranked anime. Catalog failures yield an empty list.
// @Tags Trending
// @Produce json
// @Success 200 {object} APIResponse{data=models.TrendingList} "Top anime"
// @Router /trending [get]
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.trending.Top(r.Context()))
}

// TrendingCategory handles GET /api/v1/trending/{category}.
//
// @Summary Category listing
// @Description Lists one page of a category (airing, movie, upcoming, popular; anything else lists by score), optionally filtered by genre IDs
// @Tags Trending
// @Produce json
// @Param category path string true "Category"
// @Param genres query string false "Comma-separated genre IDs"
// @Param page query int false "Page number (1-1000)" default(1)
// @Success 200 {object} APIResponse{data=[]models.CategoryItem} "Category page"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Failure 502 {object} APIResponse "Catalog unavailable"
// @Router /trending/{category} [get]
func (h *Handler) TrendingCategory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := CategoryRequest{
		Category: chi.URLParam(r, "category"),
		Genres:   r.URL.Query().Get("genres"),
		Page:     getIntParam(r, "page", 1),
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		writeValidationError(rw, apiErr)
		return
	}

	page, err := h.trending.ByCategory(r.Context(), trending.Query{
		Category: req.Category,
		Genres:   req.Genres,
		Page:     req.Page,
	})
	if err != nil {
		rw.ExternalServiceError("catalog", err)
		return
	}

	rw.SuccessWithPagination(page.Data, &PaginationMeta{
		CurrentPage:     page.Pagination.CurrentPage,
		LastVisiblePage: page.Pagination.LastVisiblePage,
		Count:           len(page.Data),
		HasMore:         page.Pagination.HasNextPage,
	})
}
