// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/animerec/internal/config"
)

// Provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// Default models per provider when none is configured.
const (
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-1.5-flash"
)

// ErrNoCredential is returned by New when the selected provider has no API key.
var ErrNoCredential = errors.New("llm: no API key configured")

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("llm: empty response")

// Client generates a completion for a single prompt.
type Client interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// APIError is a non-2xx response from a model endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm api error (status %d): %s", e.StatusCode, e.Body)
}

// New returns the client for cfg.Provider. It returns (nil, nil) for the
// "none" provider and ErrNoCredential when the key is missing.
func New(ctx context.Context, cfg config.RankerConfig, httpClient *http.Client) (Client, error) {
	switch cfg.Provider {
	case ProviderNone, "":
		return nil, nil
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, ErrNoCredential
		}
		return NewOpenAIClient(cfg, httpClient), nil
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, ErrNoCredential
		}
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
