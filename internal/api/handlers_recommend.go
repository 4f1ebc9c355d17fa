// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"net/http"

	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/models"
	"github.com/tomtom215/animerec/internal/recommend"
)

// Recommendations handles GET /api/v1/recommendations.
//
// Upstream failures never surface as error statuses: the pipeline degrades
// to an empty list instead.
//
// @Summary Recommend anime similar to a title
// @Description Resolves the query to a reference anime, gathers candidate titles from the catalog and returns them ranked by blended similarity
// @Tags Recommendations
// @Produce json
// @Param anime query string false "Free-text anime title"
// @Success 200 {object} APIResponse{data=[]models.Recommendation} "Ranked recommendations (possibly empty)"
// @Failure 400 {object} APIResponse "Query too long"
// @Router /recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := RecommendationsRequest{Anime: r.URL.Query().Get("anime")}
	if apiErr := validateRequest(&req); apiErr != nil {
		writeValidationError(rw, apiErr)
		return
	}

	result, err := h.recommender.Recommend(r.Context(), req.Anime)
	if err != nil {
		if r.Context().Err() != nil {
			// Client went away; nobody is reading the response.
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Recommendation request canceled by client")
			return
		}
		logging.Ctx(r.Context()).Warn().
			Err(err).
			Str("query", sanitizeLogValue(req.Anime)).
			Msg("Recommendation pipeline timed out, returning empty list")
		result = &recommend.Result{Items: []models.Recommendation{}, Strategy: recommend.StrategyNone}
	}

	rw.SuccessWithMeta(result.Items, &APIMeta{Recommend: recommendMeta(req.Anime, result)})
}

func recommendMeta(query string, res *recommend.Result) *RecommendMeta {
	meta := &RecommendMeta{
		Query:      query,
		Strategy:   res.Strategy,
		Candidates: res.Candidates,
	}
	if res.Base != nil {
		meta.BaseID = res.Base.ID
		meta.BaseTitle = res.Base.Title
	}
	return meta
}
