// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package similarity

import "math"

// Cosine returns the cosine similarity of a and b. Mismatched lengths,
// empty vectors and zero-norm vectors yield 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// normalize scales v to unit length in place. Zero vectors are left alone.
func normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}

// meanPool averages token embeddings into one sentence embedding.
func meanPool(tokens [][]float64) []float64 {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]float64, len(tokens[0]))
	for _, tok := range tokens {
		if len(tok) != len(out) {
			return nil
		}
		for i, x := range tok {
			out[i] += x
		}
	}
	n := float64(len(tokens))
	for i := range out {
		out[i] /= n
	}
	return out
}
