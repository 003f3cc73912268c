// Package cache provides a size-bounded LRU cache for pipeline stage results.
// Entries hold row pointers into the row cache, so the accounted size is an
// estimate of pointer overhead plus key text, not full row data.
package cache

import (
	"log"
	"sync"

	"tablegrid/grid/interfaces"
)

// DefaultMaxSize bounds the cache when no limit is configured (16MB).
const DefaultMaxSize = 16 * 1024 * 1024

// entrySizePerRow approximates the bookkeeping cost of one cached row pointer.
const entrySizePerRow = 16

// Entry is one cached stage result.
type Entry struct {
	Rows []*interfaces.Row
	size int64
}

// Cache is a thread-safe LRU cache keyed by pipeline stage key chains.
// The widget itself is single-threaded by construction, but the cache guards
// itself anyway so multiple widgets may share one instance.
type Cache struct {
	mu          sync.Mutex
	storage     map[string]*Entry
	lru         *lruList
	maxSize     int64
	currentSize int64

	hits   int64
	misses int64
}

// New creates a cache with the given byte budget. Non-positive budgets fall
// back to DefaultMaxSize.
func New(maxSize int64) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Cache{
		storage: make(map[string]*Entry),
		lru:     newLRUList(),
		maxSize: maxSize,
	}
}

// Get returns the cached rows for a key, if present.
func (c *Cache) Get(key string) ([]*interfaces.Row, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.storage[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.lru.Touch(key)
	return entry.Rows, true
}

// Store inserts a stage result, evicting oldest entries until the budget
// holds. An entry larger than the whole budget is not stored.
func (c *Cache) Store(key string, rows []*interfaces.Row) {
	size := int64(len(key)) + int64(len(rows))*entrySizePerRow

	c.mu.Lock()
	defer c.mu.Unlock()

	if size > c.maxSize {
		log.Printf("[CACHE_SKIP] Entry too large to cache (%d bytes > %d limit)", size, c.maxSize)
		return
	}

	if old, ok := c.storage[key]; ok {
		c.currentSize -= old.size
	}

	for c.currentSize+size > c.maxSize {
		oldest := c.lru.Oldest()
		if oldest == "" {
			break
		}
		c.evict(oldest)
	}

	c.storage[key] = &Entry{Rows: rows, size: size}
	c.currentSize += size
	c.lru.Touch(key)
}

// Invalidate drops every cached entry. Called when the widget's sort or
// filter semantics change out from under the keys (locale change).
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storage = make(map[string]*Entry)
	c.lru = newLRUList()
	c.currentSize = 0
}

// Stats returns hit/miss counters and the current entry count.
func (c *Cache) Stats() (hits, misses int64, entries int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.storage)
}

// evict removes one key; caller holds the lock.
func (c *Cache) evict(key string) {
	if entry, ok := c.storage[key]; ok {
		c.currentSize -= entry.size
		delete(c.storage, key)
	}
	c.lru.Remove(key)
	log.Printf("[CACHE_EVICT] Evicted entry %s", key)
}
