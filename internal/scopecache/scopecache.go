// Package scopecache is a thread-safe, identity-keyed memoization cache,
// the "async scope cache" of spec §6/§9: optional glue that analyses only
// touch if they ask for it, never shared scratch state imposed on every
// analysis.
package scopecache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes values of type V keyed by K behind an LRU eviction
// policy, safe for concurrent use from multiple goroutines (the global
// fixed-point driver's worklist may, in principle, be drained by more than
// one worker).
type Cache[K comparable, V any] struct {
	inner *lru.Cache[K, V]
}

// New creates a Cache holding at most size entries. size must be positive.
func New[K comparable, V any](size int) *Cache[K, V] {
	c, err := lru.New[K, V](size)
	if err != nil {
		panic(err) // only returns an error for size <= 0, a caller bug
	}
	return &Cache[K, V]{inner: c}
}

// Get returns the cached value for key and whether it was present.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.inner.Get(key)
}

// Put stores value under key, possibly evicting the least-recently-used
// entry.
func (c *Cache[K, V]) Put(key K, value V) {
	c.inner.Add(key, value)
}

// GetOrCompute returns the cached value for key, computing and storing it
// via compute if absent.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() V) V {
	if v, ok := c.inner.Get(key); ok {
		return v
	}
	v := compute()
	c.inner.Add(key, v)
	return v
}

// Reset discards every cached entry.
func (c *Cache[K, V]) Reset() {
	c.inner.Purge()
}

// Len returns the number of entries currently cached.
func (c *Cache[K, V]) Len() int {
	return c.inner.Len()
}
