// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/metrics"
	"github.com/tomtom215/animerec/internal/models"
	"github.com/tomtom215/animerec/internal/similarity"
)

// StrategyNone is reported when the pipeline exits before ranking.
const StrategyNone = "none"

// Outcome labels for metrics.
const (
	outcomeOK         = "ok"
	outcomeEmptyQuery = "empty_query"
	outcomeNoBase     = "no_base"
	outcomeNoSeeds    = "no_seeds"
	outcomeCanceled   = "canceled"
)

// Catalog is the subset of the catalog client the pipeline needs. All
// methods absorb failures.
type Catalog interface {
	ResolveBase(ctx context.Context, query string) (models.AnimeRecord, bool)
	FetchSeeds(ctx context.Context, id int) []models.RecommendationSeed
	Enrich(ctx context.Context, id int) (models.AnimeRecord, bool)
}

// SimilarityScorer scores candidate texts and names the provider used.
// *similarity.Chain implements it.
type SimilarityScorer interface {
	Score(ctx context.Context, base string, candidates []string) ([]float64, string, error)
}

// Result is the outcome of one Recommend call.
type Result struct {
	Items      []models.Recommendation
	Base       *models.AnimeRecord
	Strategy   string
	Candidates int
	LatencyMS  int64
}

// Engine runs the ranking pipeline. It is safe for concurrent use.
type Engine struct {
	config  Config
	catalog Catalog
	scorer  SimilarityScorer
	ranker  Ranker
	blend   BlendedScorer
	logger  zerolog.Logger
}

// Option customises an Engine.
type Option func(*Engine)

// WithRanker enables the LLM full-ranking step. A nil ranker is ignored.
func WithRanker(r Ranker) Option {
	return func(e *Engine) {
		if r != nil && !isNilRanker(r) {
			e.ranker = r
		}
	}
}

// WithLogger sets the engine logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine. A nil scorer falls back to lexical scoring.
func NewEngine(cfg Config, catalog Catalog, scorer SimilarityScorer, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	if catalog == nil {
		return nil, errors.New("recommend: catalog is required")
	}
	if scorer == nil {
		scorer = similarity.NewChain(similarity.NewLexical())
	}

	e := &Engine{
		config:  cfg,
		catalog: catalog,
		scorer:  scorer,
		blend:   NewBlendedScorer(&cfg),
		logger:  logging.WithComponent("recommend"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Recommend returns up to MaxResults titles similar to query. An empty
// result is not an error; only the caller's context ending is. When the
// engine's own RequestTimeout expires, the remaining steps work with what
// has been gathered and ranking falls back to lexical scoring.
func (e *Engine) Recommend(ctx context.Context, query string) (*Result, error) {
	start := time.Now()
	res := &Result{Items: []models.Recommendation{}, Strategy: StrategyNone}
	outcome := outcomeOK

	defer func() {
		res.LatencyMS = time.Since(start).Milliseconds()
		strategy := res.Strategy
		if strategy == StrategyNone {
			strategy = ""
		}
		metrics.RecordRecommendation(outcome, strategy, res.Candidates, time.Since(start))
	}()

	query = strings.TrimSpace(query)
	if query == "" {
		outcome = outcomeEmptyQuery
		return res, nil
	}

	caller := ctx
	if e.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.RequestTimeout)
		defer cancel()
	}
	log := logging.Scoped(ctx, e.logger).With().Str("query", query).Logger()

	base, ok := e.catalog.ResolveBase(ctx, query)
	if err := caller.Err(); err != nil {
		outcome = outcomeCanceled
		return nil, err
	}
	if !ok {
		log.Info().Msg("No base anime found")
		outcome = outcomeNoBase
		return res, nil
	}
	res.Base = &base

	seeds := e.catalog.FetchSeeds(ctx, base.ID)
	if len(seeds) == 0 {
		if err := caller.Err(); err != nil {
			outcome = outcomeCanceled
			return nil, err
		}
		log.Info().Int("base_id", base.ID).Msg("No recommendation seeds found")
		outcome = outcomeNoSeeds
		return res, nil
	}
	if len(seeds) > e.config.MaxSeeds {
		seeds = seeds[:e.config.MaxSeeds]
	}

	enriched := e.enrichAll(ctx, seeds)
	if err := caller.Err(); err != nil {
		outcome = outcomeCanceled
		return nil, err
	}
	if ctx.Err() != nil {
		log.Warn().Dur("timeout", e.config.RequestTimeout).Int("enriched", len(enriched)).
			Msg("Recommendation time budget exhausted, ranking gathered candidates lexically")
	}
	if len(enriched) < e.config.MinEnriched {
		log.Warn().Int("enriched", len(enriched)).Int("seeds", len(seeds)).Msg("Low enrichment, padding with raw seeds")
		metrics.RecommendEnrichFailures.Add(float64(len(seeds) - len(enriched)))
	}
	candidates := Dedup(PadWithSeeds(enriched, seeds, e.config.MinEnriched))
	res.Candidates = len(candidates)

	ranked, strategy, err := e.rank(ctx, caller, &base, candidates)
	if err != nil {
		outcome = outcomeCanceled
		return nil, err
	}
	res.Strategy = strategy

	ranked = QualityFilter(ranked, &e.config)
	if len(ranked) > e.config.MaxResults {
		ranked = ranked[:e.config.MaxResults]
	}
	res.Items = make([]models.Recommendation, len(ranked))
	for i := range ranked {
		res.Items[i] = ToRecommendation(&ranked[i])
	}

	log.Info().
		Str("base", base.Title).
		Int("seeds", len(seeds)).
		Int("enriched", len(enriched)).
		Int("candidates", len(candidates)).
		Int("returned", len(res.Items)).
		Str("strategy", strategy).
		Msg("Recommendation complete")
	return res, nil
}

// enrichAll fetches detail for every seed with bounded concurrency. Results
// keep seed order; failed lookups are dropped.
func (e *Engine) enrichAll(ctx context.Context, seeds []models.RecommendationSeed) []models.AnimeRecord {
	type slot struct {
		rec models.AnimeRecord
		ok  bool
	}
	slots := make([]slot, len(seeds))

	var g errgroup.Group
	g.SetLimit(e.config.EnrichConcurrency)
	for i := range seeds {
		g.Go(func() error {
			rec, ok := e.catalog.Enrich(ctx, seeds[i].ID)
			slots[i] = slot{rec: rec, ok: ok}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.AnimeRecord, 0, len(seeds))
	for _, s := range slots {
		if s.ok {
			out = append(out, s.rec)
		}
	}
	return out
}

// rank scores candidates with the LLM ranker when available, else with
// text similarity and the blended scorer. The result is sorted by score,
// descending and stable. Only the caller's context ending is an error; if
// ctx alone is done, remote strategies are skipped and lexical scoring is
// used.
func (e *Engine) rank(ctx, caller context.Context, base *models.AnimeRecord, candidates []models.AnimeRecord) ([]Scored, string, error) {
	log := logging.Scoped(ctx, e.logger)

	if e.ranker != nil && ctx.Err() == nil {
		entries, err := e.ranker.Rank(ctx, base, candidates)
		if err == nil {
			scored := make([]Scored, len(entries))
			for i, r := range entries {
				scored[i] = Scored{Anime: candidates[r.Index], Score: r.Similarity}
			}
			sortScored(scored)
			return scored, e.ranker.Name(), nil
		}
		if callerErr := caller.Err(); callerErr != nil {
			return nil, "", callerErr
		}
		metrics.RecordProviderFailure("llm")
		log.Info().Err(err).Msg("LLM ranking unavailable, falling back to similarity scoring")
	}

	texts := make([]string, len(candidates))
	for i := range candidates {
		texts[i] = candidates[i].Text()
	}
	var (
		sims     []float64
		provider string
		err      error
	)
	if ctx.Err() == nil {
		sims, provider, err = e.scorer.Score(ctx, base.Text(), texts)
	} else {
		err = ctx.Err()
	}
	if err != nil {
		if callerErr := caller.Err(); callerErr != nil {
			return nil, "", callerErr
		}
		log.Warn().Err(err).Msg("Similarity scoring failed, using lexical scoring")
		sims, provider = similarity.LexicalScores(base.Text(), texts), similarity.LexicalName
	}

	scored := make([]Scored, len(candidates))
	for i := range candidates {
		scored[i] = Scored{
			Anime: candidates[i],
			Score: e.blend.Score(base, &candidates[i], sims[i]),
		}
	}
	sortScored(scored)
	return scored, provider, nil
}

func sortScored(s []Scored) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Score > s[j].Score })
}

// isNilRanker catches typed nil pointers such as a (*LLMRanker)(nil)
// returned by NewLLMRanker for a disabled provider.
func isNilRanker(r Ranker) bool {
	l, ok := r.(*LLMRanker)
	return ok && l == nil
}
