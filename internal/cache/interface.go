// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package cache

import "time"

// Cacher defines the interface for cache implementations.
type Cacher interface {
	// Get returns the value and true if present and not expired.
	Get(key string) (interface{}, bool)

	// Set stores a value with the default TTL.
	Set(key string, value interface{})

	// SetWithTTL stores a value with a custom TTL.
	SetWithTTL(key string, value interface{}, ttl time.Duration)

	// Delete removes a value.
	Delete(key string)

	// Clear removes all entries.
	Clear()

	// Stats returns a snapshot of cache statistics.
	Stats() Stats
}

// Sweeper is implemented by caches that can drop expired entries eagerly.
type Sweeper interface {
	Sweep() int
}

// Clock supplies the current time. Tests inject a manual clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Name      string    `json:"name"`
	Entries   int       `json:"entries"`
	Capacity  int       `json:"capacity"`
	Hits      int64     `json:"hits"`
	Misses    int64     `json:"misses"`
	Evictions int64     `json:"evictions"`
	Expired   int64     `json:"expired"`
	LastSweep time.Time `json:"last_sweep"`
}

// HitRate returns the hit rate as a percentage, 0 when unused.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}
