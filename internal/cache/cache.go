// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/animerec/internal/metrics"
)

const (
	// DefaultTTL matches the short-lived lookup cache of the web front-end.
	DefaultTTL = 5 * time.Minute

	// DefaultCapacity bounds memory when no capacity is configured.
	DefaultCapacity = 1024
)

// Config configures a Cache.
type Config struct {
	// Name labels the cache in metrics and logs.
	Name string

	// TTL is the default lifetime of an entry.
	TTL time.Duration

	// Capacity is the maximum number of entries; the least recently used
	// entry is evicted when it is exceeded.
	Capacity int

	// Clock defaults to SystemClock.
	Clock Clock
}

type entry struct {
	key       string
	value     interface{}
	expiresAt time.Time
	prev      *entry
	next      *entry
}

// Cache is a thread-safe TTL cache with LRU eviction at capacity.
// All operations are O(1) except Sweep and Clear.
type Cache struct {
	mu sync.Mutex

	name     string
	ttl      time.Duration
	capacity int
	clock    Clock

	items map[string]*entry

	// head.next is the most recently used entry, tail.prev the least.
	head *entry
	tail *entry

	hits      int64
	misses    int64
	evictions int64
	expired   int64
	lastSweep time.Time
}

var _ Cacher = (*Cache)(nil)
var _ Sweeper = (*Cache)(nil)

// New creates a cache. Zero values in cfg fall back to the defaults.
func New(cfg Config) *Cache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Name == "" {
		cfg.Name = "default"
	}

	c := &Cache{
		name:     cfg.Name,
		ttl:      cfg.TTL,
		capacity: cfg.Capacity,
		clock:    cfg.Clock,
		items:    make(map[string]*entry),
		head:     &entry{},
		tail:     &entry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	c.lastSweep = c.clock.Now()
	return c
}

// Name returns the cache name.
func (c *Cache) Name() string {
	return c.name
}

// Get returns the value for key if present and unexpired. A hit moves the
// entry to the most recently used position.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.misses++
		metrics.RecordCacheAccess(c.name, false)
		return nil, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		c.removeEntry(e)
		c.expired++
		c.misses++
		metrics.CacheEvictions.WithLabelValues(c.name, "expired").Inc()
		metrics.RecordCacheAccess(c.name, false)
		c.updateSizeMetric()
		return nil, false
	}

	c.moveToFront(e)
	c.hits++
	metrics.RecordCacheAccess(c.name, true)
	return e.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with a custom TTL. A non-positive TTL
// uses the default.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.clock.Now().Add(ttl)
	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(e)
	c.items[key] = e

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
	c.updateSizeMetric()
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.removeEntry(e)
		c.updateSizeMetric()
	}
}

// Clear removes all entries. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry)
	c.head.next = c.tail
	c.tail.prev = c.head
	c.updateSizeMetric()
}

// Len returns the number of stored entries, including expired entries that
// have not been swept yet.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Sweep removes every expired entry and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	removed := 0
	for e := c.tail.prev; e != c.head; {
		prev := e.prev
		if !now.Before(e.expiresAt) {
			c.removeEntry(e)
			removed++
		}
		e = prev
	}
	c.expired += int64(removed)
	c.lastSweep = now
	if removed > 0 {
		metrics.CacheEvictions.WithLabelValues(c.name, "expired").Add(float64(removed))
	}
	c.updateSizeMetric()
	return removed
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Name:      c.name,
		Entries:   len(c.items),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Expired:   c.expired,
		LastSweep: c.lastSweep,
	}
}

func (c *Cache) addToFront(e *entry) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *Cache) moveToFront(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.addToFront(e)
}

func (c *Cache) removeEntry(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev, e.next = nil, nil
	delete(c.items, e.key)
}

func (c *Cache) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
	c.evictions++
	metrics.CacheEvictions.WithLabelValues(c.name, "capacity").Inc()
}

func (c *Cache) updateSizeMetric() {
	metrics.CacheEntries.WithLabelValues(c.name).Set(float64(len(c.items)))
}

// GenerateKey builds a compact cache key from a prefix and any
// JSON-serialisable parameters.
func GenerateKey(prefix string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", prefix, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", prefix, hash[:16])
}
