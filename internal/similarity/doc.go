// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package similarity scores candidate texts against a base text.
//
// Two providers implement Scorer:
//
//   - HuggingFace calls the Hugging Face inference API in one batched request.
//     It accepts either pairwise similarity scores or embedding vectors; for
//     embeddings the cosine is computed locally.
//   - Lexical builds term-frequency vectors over a shared vocabulary and
//     compares them by cosine. It needs no network and never fails.
//
// Chain tries scorers in order and returns the first usable result, so a
// typical deployment wires HuggingFace first with Lexical as the terminal
// fallback.
package similarity
