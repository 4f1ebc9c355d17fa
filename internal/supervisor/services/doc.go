// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

/*
Package services provides suture.Service wrappers for Animerec components.

Services:

  - HTTPServerService: runs the API server, shuts it down gracefully when
    the supervisor stops
  - CacheJanitorService: sweeps expired entries from the listing caches on
    a fixed interval

Every service implements suture.Service (Serve(ctx) error) and
fmt.Stringer so suture events name it. Serve returns ctx.Err() on a
requested stop and any other error to request a restart.
*/
package services
