// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package logging provides the process-wide zerolog logger for Animerec.
//
// All packages log through this package or through a zerolog.Logger derived
// from it, so output format, level and field names stay consistent.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//
//	// Request-scoped logging picks up request_id and correlation_id
//	logging.Ctx(ctx).Debug().Int("seeds", n).Msg("Fetched recommendation seeds")
//
// # Components
//
// Long-lived components receive a zerolog.Logger and derive a child logger:
//
//	logger := logging.WithComponent("catalog")
//
// # Suture Integration
//
// The supervisor tree expects a *slog.Logger. NewSlogHandler bridges slog
// records into zerolog:
//
//	slogger := slog.New(logging.NewSlogHandler())
//
// Always terminate event chains with Msg or Send; an unterminated event is
// never written.
package logging
