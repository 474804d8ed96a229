// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package embedding

import (
	"sync"
	"time"
)

// lruEntry is a node in the cache's doubly-linked list.
type lruEntry struct {
	key       string
	value     Vector
	prev      *lruEntry
	next      *lruEntry
	expiresAt time.Time
}

// vectorLRU is a thread-safe least recently used cache of vectors with TTL.
// Get, Add and eviction are O(1); expired entries are dropped lazily on access.
type vectorLRU struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time

	items map[string]*lruEntry

	// head.next is the most recently used, tail.prev the least recently used.
	head *lruEntry
	tail *lruEntry
}

func newVectorLRU(capacity int, ttl time.Duration) *vectorLRU {
	if capacity <= 0 {
		capacity = 1024
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	c := &vectorLRU{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[string]*lruEntry, capacity),
		head:     &lruEntry{},
		tail:     &lruEntry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// get returns the cached vector for key and marks it most recently used.
func (c *vectorLRU) get(key string) (Vector, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.removeEntry(entry)
		return nil, false
	}
	c.moveToFront(entry)
	return entry.value, true
}

// add stores value under key, evicting the least recently used entry when full.
func (c *vectorLRU) add(key string, value Vector) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if entry, ok := c.items[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt
		c.moveToFront(entry)
		return
	}

	entry := &lruEntry{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(entry)
	c.items[key] = entry

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
}

func (c *vectorLRU) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Internal methods (must be called with lock held)

func (c *vectorLRU) addToFront(entry *lruEntry) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *vectorLRU) unlink(entry *lruEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
}

func (c *vectorLRU) moveToFront(entry *lruEntry) {
	c.unlink(entry)
	c.addToFront(entry)
}

func (c *vectorLRU) removeEntry(entry *lruEntry) {
	c.unlink(entry)
	delete(c.items, entry.key)
}

func (c *vectorLRU) evictOldest() {
	if oldest := c.tail.prev; oldest != c.head {
		c.removeEntry(oldest)
	}
}
