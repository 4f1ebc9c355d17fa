// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package feedback stores messages submitted through the contact form in
// BadgerDB. Keys are "feedback/<UTC timestamp, fixed-width nanoseconds>/<uuid>" so a reverse
// prefix scan lists the newest entries first. With an empty path the
// database runs in memory.
package feedback
