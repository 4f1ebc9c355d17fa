// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package cache provides a bounded, thread-safe TTL cache with LRU eviction.
//
// The cache is an explicit service rather than process-wide state: every
// instance carries its own TTL, capacity and Clock, and expired entries are
// removed lazily on access and eagerly by Sweep. The supervisor runs a
// janitor service that calls Sweep on an interval.
//
// The ranking pipeline itself never caches; the trending listings do.
//
// # Usage
//
//	c := cache.New(cache.Config{Name: "trending", TTL: time.Hour, Capacity: 256})
//	c.Set("top", items)
//	if v, ok := c.Get("top"); ok {
//	    items = v.([]models.TrendingItem)
//	}
package cache
