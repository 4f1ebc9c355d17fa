// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *manualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *manualClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

func TestCacheBasicOperations(t *testing.T) {
	c := New(Config{Name: "test_basic", TTL: time.Minute, Capacity: 10})

	c.Set("key1", "value1")
	value, ok := c.Get("key1")
	if !ok {
		t.Fatal("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, ok := c.Get("key2"); ok {
		t.Error("Expected key2 to not exist")
	}

	c.Delete("key1")
	if _, ok := c.Get("key1"); ok {
		t.Error("Expected key1 to be deleted")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestCacheExpirationUsesClock(t *testing.T) {
	clock := newManualClock()
	c := New(Config{Name: "test_expiry", TTL: 5 * time.Minute, Clock: clock})

	c.Set("key", 1)
	clock.Advance(4*time.Minute + 59*time.Second)
	if _, ok := c.Get("key"); !ok {
		t.Fatal("expected entry before TTL")
	}

	clock.Advance(time.Second)
	if _, ok := c.Get("key"); ok {
		t.Fatal("expected entry to expire at TTL")
	}
	if got := c.Stats().Expired; got != 1 {
		t.Errorf("expired = %d, want 1", got)
	}
}

func TestCacheSetWithTTL(t *testing.T) {
	clock := newManualClock()
	c := New(Config{Name: "test_custom_ttl", TTL: time.Minute, Clock: clock})

	c.SetWithTTL("long", "v", time.Hour)
	clock.Advance(30 * time.Minute)
	if _, ok := c.Get("long"); !ok {
		t.Error("expected custom TTL to outlive default")
	}
}

func TestCacheCapacityEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(Config{Name: "test_lru", TTL: time.Hour, Capacity: 3})

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	c.Get("a") // a becomes most recent; b is now least recent
	c.Set("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("expected %s to remain", k)
		}
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("evictions = %d, want 1", got)
	}
	if got := c.Len(); got != 3 {
		t.Errorf("len = %d, want 3", got)
	}
}

func TestCacheSweep(t *testing.T) {
	clock := newManualClock()
	c := New(Config{Name: "test_sweep", TTL: time.Minute, Clock: clock})

	c.Set("short1", 1)
	c.Set("short2", 2)
	c.SetWithTTL("long", 3, time.Hour)

	clock.Advance(2 * time.Minute)
	if removed := c.Sweep(); removed != 2 {
		t.Errorf("Sweep() removed %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
	if !c.Stats().LastSweep.Equal(clock.Now()) {
		t.Error("expected LastSweep to follow the clock")
	}
}

func TestCacheClear(t *testing.T) {
	c := New(Config{Name: "test_clear"})
	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("len = %d after Clear", c.Len())
	}
	c.Set("again", 1)
	if _, ok := c.Get("again"); !ok {
		t.Error("cache should be usable after Clear")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New(Config{Name: "test_concurrent", Capacity: 50})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (n*j)%80)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("len %d exceeds capacity", c.Len())
	}
}

func TestGenerateKey(t *testing.T) {
	type q struct {
		Category string
		Page     int
	}
	a := GenerateKey("browse", q{"airing", 1})
	b := GenerateKey("browse", q{"airing", 1})
	c := GenerateKey("browse", q{"airing", 2})

	if a != b {
		t.Error("expected identical params to produce identical keys")
	}
	if a == c {
		t.Error("expected different params to produce different keys")
	}
}

func TestStatsHitRate(t *testing.T) {
	if got := (Stats{}).HitRate(); got != 0 {
		t.Errorf("empty hit rate = %v", got)
	}
	if got := (Stats{Hits: 3, Misses: 1}).HitRate(); got != 75 {
		t.Errorf("hit rate = %v, want 75", got)
	}
}
