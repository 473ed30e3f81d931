// Package lattice provides the write-once memo tables owned by noise
// generators.
package lattice

import "sync"

// Key identifies a unit lattice cell by its integer corner coordinate.
type Key struct {
	X int
	Y int
}

// Cache maps keys to lazily created values. Each key is written at most once
// for the life of the cache. It is safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// New creates an empty cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]V)}
}

// GetOrCreate returns the entry stored for key. When there is none, factory is
// invoked exactly once, and its result is stored and returned.
func (c *Cache[K, V]) GetOrCreate(key K, factory func() V) V {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return v
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another caller may have won the race between the two locks.
	if v, ok := c.entries[key]; ok {
		return v
	}
	v = factory()
	c.entries[key] = v
	return v
}

// Lookup returns the stored entry for key without creating one.
func (c *Cache[K, V]) Lookup(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Len reports the number of stored entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
