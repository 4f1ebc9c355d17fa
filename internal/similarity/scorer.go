// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package similarity

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/metrics"
)

// ErrUnavailable marks a provider that cannot produce scores right now:
// missing credential, exhausted retries or a malformed response.
var ErrUnavailable = errors.New("similarity provider unavailable")

// Scorer returns one similarity per candidate, aligned by index.
type Scorer interface {
	Name() string
	Score(ctx context.Context, base string, candidates []string) ([]float64, error)
}

// unavailable wraps cause with ErrUnavailable.
func unavailable(provider string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", provider, ErrUnavailable)
	}
	return fmt.Errorf("%s: %w: %w", provider, ErrUnavailable, cause)
}

// Chain tries scorers in order until one succeeds.
type Chain struct {
	scorers []Scorer
	logger  zerolog.Logger
}

// NewChain builds a chain. Nil scorers are skipped.
func NewChain(scorers ...Scorer) *Chain {
	c := &Chain{logger: logging.WithComponent("similarity")}
	for _, s := range scorers {
		if s != nil {
			c.scorers = append(c.scorers, s)
		}
	}
	return c
}

// Names lists the configured scorers in order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.scorers))
	for i, s := range c.scorers {
		names[i] = s.Name()
	}
	return names
}

// Score returns the scores of the first scorer that succeeds together with
// its name. Context cancellation stops the chain.
func (c *Chain) Score(ctx context.Context, base string, candidates []string) ([]float64, string, error) {
	log := logging.Scoped(ctx, c.logger)
	var errs []error
	for _, s := range c.scorers {
		scores, err := s.Score(ctx, base, candidates)
		if err == nil && len(scores) == len(candidates) {
			return scores, s.Name(), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", ctxErr
		}
		if err == nil {
			err = unavailable(s.Name(), fmt.Errorf("got %d scores for %d candidates", len(scores), len(candidates)))
		}
		metrics.RecordProviderFailure(s.Name())
		log.Info().Err(err).Str("provider", s.Name()).Msg("Similarity provider unavailable, falling back")
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, "", unavailable("chain", errors.New("no scorers configured"))
	}
	return nil, "", errors.Join(errs...)
}
