// Package cache keeps a bounded set of recently used shared objects alive.
//
// The cache is itself an owner: each entry holds one member of the value's
// [own.Shared] family. Callers receive their own member from Acquire and drop
// it when done, so an evicted value stays valid until its last user lets go.
package cache

import (
	"sync"

	"github.com/gogpu/own"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 64

// Stats is a snapshot of cache counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Cache is an LRU of shared values.
//
// Cache is safe for concurrent use, but the families it hands out follow the
// single-goroutine contract of package own.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*entry[K, V]
	lru      lruList[K]
	capacity int

	hits, misses, evictions uint64
}

type entry[K comparable, V any] struct {
	value own.Shared[V]
	node  *lruNode[K]
}

// New creates a cache holding at most capacity entries.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[K, V]{
		entries:  make(map[K]*entry[K, V]),
		capacity: capacity,
	}
}

// Acquire returns a new owner of the value cached under key. On a miss, create
// is called under the lock and the cache keeps one owner of its result. An
// empty result from create is returned as-is and not cached.
func (c *Cache[K, V]) Acquire(key K, create func() own.Shared[V]) own.Shared[V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.hits++
		c.lru.MoveToFront(e.node)
		return e.value.Clone()
	}
	c.misses++

	e := &entry[K, V]{value: create()}
	if e.value.IsNull() {
		return own.Shared[V]{}
	}
	for c.lru.Len() >= c.capacity {
		c.evictOldest()
	}
	e.node = c.lru.PushFront(key)
	c.entries[key] = e
	return e.value.Clone()
}

// Get returns a new owner of the value cached under key.
func (c *Cache[K, V]) Get(key K) (own.Shared[V], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return own.Shared[V]{}, false
	}
	c.hits++
	c.lru.MoveToFront(e.node)
	return e.value.Clone(), true
}

// Delete drops the cache's owner of key. It reports whether key was cached.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.lru.Remove(e.node)
	delete(c.entries, key)
	e.value.Drop()
	return true
}

// Clear drops every owner held by the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		c.lru.Remove(e.node)
		delete(c.entries, key)
		e.value.Drop()
	}
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the current counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Len:       len(c.entries),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// evictOldest drops the least recently used entry. Caller must hold c.mu.
func (c *Cache[K, V]) evictOldest() {
	key, ok := c.lru.RemoveOldest()
	if !ok {
		return
	}
	e := c.entries[key]
	delete(c.entries, key)
	e.value.Drop()
	c.evictions++
}
