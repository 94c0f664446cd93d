// Package cache provides a small in-memory TTL cache.
//
// The invoice-number generator reads per-shop business info on every call;
// the cache keeps that lookup off the database without ambient global state.
// The TTL is explicit so callers own the staleness trade-off.
package cache

import (
	"sync"
	"time"
)

// TTL is an in-memory cache with a fixed per-cache time-to-live.
// The zero value is not usable; construct with New.
type TTL[K comparable, V any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[K]entry[V]
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// New constructs a TTL cache. A non-positive ttl disables expiry.
func New[K comparable, V any](ttl time.Duration) *TTL[K, V] {
	return &TTL[K, V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[K]entry[V]),
	}
}

// Get returns the cached value for key if present and fresh.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	var zero V
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, resetting its age.
func (c *TTL[K, V]) Put(key K, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate drops the entry for key, if any.
func (c *TTL[K, V]) Invalidate(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired or not.
func (c *TTL[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
