// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package similarity

import (
	"context"
	"strings"
)

// LexicalName identifies the lexical scorer in logs and results.
const LexicalName = "lexical"

// Lexical scores texts by term-frequency cosine similarity.
type Lexical struct{}

// NewLexical returns the lexical scorer.
func NewLexical() *Lexical { return &Lexical{} }

// Name implements Scorer.
func (*Lexical) Name() string { return LexicalName }

// Score implements Scorer. It never fails.
func (*Lexical) Score(_ context.Context, base string, candidates []string) ([]float64, error) {
	return LexicalScores(base, candidates), nil
}

// LexicalScores compares base against each candidate. The vocabulary is the
// union of tokens over all texts; each text becomes an L2-normalised
// term-frequency vector.
func LexicalScores(base string, candidates []string) []float64 {
	docs := make([][]string, 0, len(candidates)+1)
	docs = append(docs, Tokenize(base))
	for _, c := range candidates {
		docs = append(docs, Tokenize(c))
	}

	vocab := make(map[string]int)
	for _, doc := range docs {
		for _, tok := range doc {
			if _, ok := vocab[tok]; !ok {
				vocab[tok] = len(vocab)
			}
		}
	}

	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		v := make([]float64, len(vocab))
		for _, tok := range doc {
			v[vocab[tok]]++
		}
		normalize(v)
		vectors[i] = v
	}

	scores := make([]float64, len(candidates))
	for i := range candidates {
		scores[i] = Cosine(vectors[0], vectors[i+1])
	}
	return scores
}

// Tokenize lower-cases text, turns every character outside [a-z0-9] into a
// separator and returns the non-empty tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})
}
