// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package llm provides the generative-model clients used by the optional
// full-ranking step: an OpenAI-compatible chat-completions client and a
// Google Gemini client.
package llm
