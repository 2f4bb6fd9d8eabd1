// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Entry is a cached value with its absolute expiry.
type Entry struct {
	Data      []byte
	ExpiresAt time.Time
}

// Cache is the in-process TTL cache. Expired entries are dropped when read
// and by Cleanup, which the janitor service calls periodically. There is no
// size bound and no other eviction policy.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time

	hits        atomic.Int64
	misses      atomic.Int64
	evictions   atomic.Int64
	lastCleanup atomic.Int64 // unix nanos
}

// New creates an in-memory cache whose entries live for ttl unless Set is
// given an explicit duration.
//
// Example:
//
//	c := cache.New(time.Hour)
//	_ = c.Set(ctx, "series:1", payload, 0)
//	if data, ok := c.Get(ctx, "series:1"); ok {
//	    // use data
//	}
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// TTL returns the default entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns the value stored under key. An expired entry is deleted and
// reported as a miss.
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		return nil, false
	}

	if !c.now().Before(entry.ExpiresAt) {
		c.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the entry.
		if current, ok := c.entries[key]; ok && !c.now().Before(current.ExpiresAt) {
			delete(c.entries, key)
			c.evictions.Add(1)
		}
		c.mu.Unlock()
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return entry.Data, true
}

// Set stores value under key. ttl <= 0 uses the cache default.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	c.mu.Lock()
	c.entries[key] = Entry{Data: value, ExpiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Delete removes key. Missing keys are ignored.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.evictions.Add(1)
	}
	c.mu.Unlock()
	return nil
}

// Clear drops every entry.
func (c *Cache) Clear(_ context.Context) error {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]Entry)
	c.mu.Unlock()
	c.evictions.Add(int64(n))
	return nil
}

// Cleanup removes all expired entries and returns how many were dropped.
func (c *Cache) Cleanup() int {
	now := c.now()
	c.mu.Lock()
	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()

	c.evictions.Add(int64(removed))
	c.lastCleanup.Store(now.UnixNano())
	return removed
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	s := Stats{
		Backend:   BackendMemory,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Entries:   int64(c.Len()),
	}
	if ns := c.lastCleanup.Load(); ns != 0 {
		s.LastCleanup = time.Unix(0, ns)
	}
	return s
}

// Close is a no-op for the memory backend.
func (c *Cache) Close() error {
	return nil
}
