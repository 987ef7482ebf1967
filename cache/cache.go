package cache

import (
	"sync"
	"sync/atomic"
)

// Cache is a thread-safe, generic key/value store. Steps use it to publish
// facts (resolved paths, backup locations) consumed by later steps.
type Cache[K comparable, V any] struct {
	store     sync.Map
	itemCount atomic.Int64
}

// NewCache creates a new Cache instance.
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{}
}

// Set adds or updates an item in the cache.
func (c *Cache[K, V]) Set(k K, v V) {
	if _, loaded := c.store.Swap(k, v); !loaded {
		c.itemCount.Add(1)
	}
}

// Get retrieves an item from the cache.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	var zeroV V
	loaded, ok := c.store.Load(k)
	if !ok {
		return zeroV, false
	}
	value, ok := loaded.(V)
	if !ok {
		return zeroV, false
	}
	return value, true
}

// GetOrDefault retrieves an item, returning def when the key is absent.
func (c *Cache[K, V]) GetOrDefault(k K, def V) V {
	if v, ok := c.Get(k); ok {
		return v
	}
	return def
}

// GetOrSet returns the existing value for the key if present.
// Otherwise, it stores and returns the given value.
// The loaded result is true if the value was loaded, false if stored.
func (c *Cache[K, V]) GetOrSet(k K, v V) (V, bool) {
	actual, loaded := c.store.LoadOrStore(k, v)
	if !loaded {
		c.itemCount.Add(1)
		return v, false
	}
	value, ok := actual.(V)
	if !ok {
		var zeroV V
		return zeroV, false
	}
	return value, true
}

// Delete removes an item from the cache.
func (c *Cache[K, V]) Delete(k K) {
	if _, loaded := c.store.LoadAndDelete(k); loaded {
		c.itemCount.Add(-1)
	}
}

// Range iterates over the cache items, calling f for each key and value.
// If f returns false, range stops the iteration. Order is not guaranteed.
func (c *Cache[K, V]) Range(f func(key K, value V) bool) {
	c.store.Range(func(key, value interface{}) bool {
		k, kOK := key.(K)
		v, vOK := value.(V)
		if !kOK || !vOK {
			return true
		}
		return f(k, v)
	})
}

// Len returns the current number of items in the cache.
func (c *Cache[K, V]) Len() int64 {
	return c.itemCount.Load()
}

// Clean removes all items from the cache.
func (c *Cache[K, V]) Clean() {
	c.store = sync.Map{}
	c.itemCount.Store(0)
}
