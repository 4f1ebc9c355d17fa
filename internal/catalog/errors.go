// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	gobreaker "github.com/sony/gobreaker/v2"
)

// ErrNotFound is returned when Jikan has no entry for the requested id.
var ErrNotFound = errors.New("catalog: anime not found")

// maxErrorBodySize caps how much of an error response body is kept.
const maxErrorBodySize = 4 * 1024

// HTTPStatusError is returned for non-2xx responses.
type HTTPStatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("catalog %s: HTTP %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("catalog %s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// IsRetryable reports whether err is transient: network failures, 5xx and
// 429 responses. Context cancellation and definitive 4xx responses are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrNotFound) {
		return false
	}
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	var decodeErr *DecodeError
	return !errors.As(err, &decodeErr)
}

// isClientError reports a definitive 4xx (including 404) that should not
// count against the circuit breaker.
func isClientError(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 &&
			statusErr.StatusCode != http.StatusTooManyRequests
	}
	return false
}

// isBreakerRejection reports whether the circuit breaker refused the call.
func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// DecodeError wraps a malformed response body.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("catalog %s: decode response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	return string(body)
}
