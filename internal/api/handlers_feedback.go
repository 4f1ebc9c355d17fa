// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/animerec/internal/feedback"
	"github.com/tomtom215/animerec/internal/metrics"
	"github.com/tomtom215/animerec/internal/models"
	"github.com/tomtom215/animerec/internal/validation"
)

// maxFeedbackBodyBytes bounds the request body of POST /feedback.
const maxFeedbackBodyBytes = 64 << 10

// FeedbackReceipt is returned after a message is stored.
type FeedbackReceipt struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitFeedback handles POST /api/v1/feedback.
//
// @Summary Submit feedback
// @Description Stores a contact-form message. Accepts a JSON body or form fields.
// @Tags Feedback
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body FeedbackRequest true "Email and message"
// @Success 201 {object} APIResponse{data=FeedbackReceipt} "Stored"
// @Failure 400 {object} APIResponse "Missing or invalid fields"
// @Failure 500 {object} APIResponse "Storage failure"
// @Failure 503 {object} APIResponse "Feedback disabled"
// @Router /feedback [post]
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.feedback == nil {
		rw.ServiceUnavailable("Feedback is disabled")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFeedbackBodyBytes)
	req, err := decodeFeedback(r)
	if err != nil {
		metrics.FeedbackSubmissions.WithLabelValues("invalid").Inc()
		rw.BadRequest("Invalid request body")
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.FeedbackSubmissions.WithLabelValues("invalid").Inc()
		writeValidationError(rw, apiErr)
		return
	}

	saved, err := h.feedback.Save(r.Context(), models.Feedback{
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		var verr *validation.RequestValidationError
		switch {
		case errors.As(err, &verr):
			apiErr := verr.ToAPIError()
			rw.ValidationError(apiErr.Message, apiErr.Details)
		case errors.Is(err, feedback.ErrClosed):
			rw.ServiceUnavailable("Feedback store is shutting down")
		default:
			rw.StorageError(err)
		}
		return
	}

	rw.Created(FeedbackReceipt{ID: saved.ID, CreatedAt: saved.CreatedAt})
}

// decodeFeedback reads a JSON body or form fields depending on Content-Type.
func decodeFeedback(r *http.Request) (FeedbackRequest, error) {
	var req FeedbackRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFeedbackBodyBytes); err != nil {
			return req, err
		}
		req.Email = r.PostFormValue("email")
		req.Message = r.PostFormValue("message")
	default:
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		req.Email = r.PostFormValue("email")
		req.Message = r.PostFormValue("message")
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	return req, nil
}
