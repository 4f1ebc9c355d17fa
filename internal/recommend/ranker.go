// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/animerec/internal/llm"
	"github.com/tomtom215/animerec/internal/models"
)

// ErrRankerUnavailable means the LLM ranker produced nothing usable and the
// pipeline should fall back to similarity scoring.
var ErrRankerUnavailable = errors.New("llm ranker unavailable")

// Ranked is one candidate scored by the LLM ranker.
type Ranked struct {
	Index      int
	Similarity float64
}

// Ranker orders candidates against a base anime.
type Ranker interface {
	Name() string
	Rank(ctx context.Context, base *models.AnimeRecord, candidates []models.AnimeRecord) ([]Ranked, error)
}

// LLMRanker asks a generative model to rank every candidate at once.
type LLMRanker struct {
	client llm.Client
}

// NewLLMRanker wraps client. A nil client yields a nil ranker.
func NewLLMRanker(client llm.Client) *LLMRanker {
	if client == nil {
		return nil
	}
	return &LLMRanker{client: client}
}

// Name identifies the ranker strategy.
func (r *LLMRanker) Name() string { return "llm:" + r.client.Name() }

// Rank implements Ranker. Any failure is reported as ErrRankerUnavailable.
func (r *LLMRanker) Rank(ctx context.Context, base *models.AnimeRecord, candidates []models.AnimeRecord) ([]Ranked, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrRankerUnavailable)
	}
	reply, err := r.client.Generate(ctx, BuildPrompt(base, candidates))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRankerUnavailable, err)
	}
	return ParseRanking(reply, len(candidates))
}

// BuildPrompt renders the ranking prompt for base and candidates.
func BuildPrompt(base *models.AnimeRecord, candidates []models.AnimeRecord) string {
	var b strings.Builder
	b.WriteString("You are an anime recommendation expert. Given a base anime and a list of candidate anime, ")
	b.WriteString("rank the candidates by similarity to the base anime. Consider plot themes, genres, ")
	b.WriteString("character types, setting, and overall tone.\n\n")

	b.WriteString("Base Anime:\n")
	fmt.Fprintf(&b, "Title: %s\n", base.Title)
	fmt.Fprintf(&b, "Synopsis: %s\n", promptSynopsis(base))
	fmt.Fprintf(&b, "Genres: %s\n", promptGenres(base))
	fmt.Fprintf(&b, "MAL Score: %s\n\n", promptScore(base))

	b.WriteString("Candidate Anime to Rank:\n")
	for i := range candidates {
		c := &candidates[i]
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%d: %s\nSynopsis: %s\nGenres: %s\nScore: %s",
			i, c.Title, promptSynopsis(c), promptGenres(c), promptScore(c))
	}

	b.WriteString("\n\nReturn ONLY a JSON array with objects containing \"index\" (the candidate index) and ")
	b.WriteString("\"similarity\" (a score from 0.0 to 1.0). Order by similarity descending. Example format:\n")
	b.WriteString(`[{"index": 2, "similarity": 0.95}, {"index": 0, "similarity": 0.87}, {"index": 1, "similarity": 0.72}]`)
	return b.String()
}

func promptSynopsis(a *models.AnimeRecord) string {
	if a.Synopsis == "" {
		return "No synopsis available"
	}
	return a.Synopsis
}

func promptGenres(a *models.AnimeRecord) string {
	if len(a.Genres) == 0 {
		return "Unknown"
	}
	return strings.Join(a.Genres, ", ")
}

func promptScore(a *models.AnimeRecord) string {
	if a.Score == nil || *a.Score == 0 {
		return "Not rated"
	}
	return strconv.FormatFloat(*a.Score, 'f', -1, 64)
}

// ParseRanking decodes a model reply into ranked entries. Markdown code
// fences are stripped. Entries with a non-integer or out-of-range index or a
// non-numeric similarity are dropped; for a repeated index the first entry
// wins. An empty result is ErrRankerUnavailable.
func ParseRanking(reply string, n int) ([]Ranked, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &raw); err != nil {
		return nil, fmt.Errorf("%w: reply is not a JSON array: %w", ErrRankerUnavailable, err)
	}

	seen := make(map[int]struct{}, len(raw))
	out := make([]Ranked, 0, len(raw))
	for _, item := range raw {
		var entry map[string]json.RawMessage
		if err := json.Unmarshal(item, &entry); err != nil {
			continue
		}
		idx, ok := jsonNumber(entry["index"])
		if !ok || idx != float64(int(idx)) || idx < 0 || int(idx) >= n {
			continue
		}
		sim, ok := jsonNumber(entry["similarity"])
		if !ok {
			continue
		}
		if _, dup := seen[int(idx)]; dup {
			continue
		}
		seen[int(idx)] = struct{}{}
		out = append(out, Ranked{Index: int(idx), Similarity: sim})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no usable entries", ErrRankerUnavailable)
	}
	return out, nil
}

// jsonNumber decodes msg as a JSON number. Missing values, null and other
// types are rejected.
func jsonNumber(msg json.RawMessage) (float64, bool) {
	trimmed := strings.TrimSpace(string(msg))
	if trimmed == "" || trimmed == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(msg, &f); err != nil {
		return 0, false
	}
	return f, true
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
