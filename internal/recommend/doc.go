// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package recommend implements the anime recommendation ranking pipeline.
//
// Given a free-text title, Engine.Recommend:
//
//  1. resolves the query to a base anime through the catalog
//  2. fetches up to MaxSeeds related-title seeds and enriches them
//     concurrently, keeping seed order and dropping individual failures
//  3. pads thin candidate sets with raw seed metadata, then deduplicates
//  4. ranks candidates with the optional LLM ranker, or with text similarity
//     (remote semantic provider, else lexical) combined by BlendedScorer
//  5. sorts, applies an adaptive quality filter and truncates
//
// Every upstream failure degrades to a smaller or differently ranked list.
// Recommend only returns an error when the caller's context ends.
//
// The blended score is
//
//	final = 0.7*similarity + 0.2*genreJaccard + 0.1*normalizedPopularity
//
// where normalizedPopularity maps an aggregate score in [4, 10] onto [0, 1].
//
// The engine keeps no state between requests and is safe for concurrent use.
package recommend
