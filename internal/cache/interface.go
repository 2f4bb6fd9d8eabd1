// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package cache

import (
	"context"
	"time"
)

// DefaultTTL is used when a backend is created without a TTL.
const DefaultTTL = time.Hour

// Backend names accepted by CACHE_BACKEND.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendBadger = "badger"
)

// Cacher is implemented by every cache backend. Values are opaque bytes;
// use GetJSON and SetJSON for typed access.
//
// Backends treat their own transport failures as misses on Get so a cache
// outage degrades to uncached reads instead of failed requests.
type Cacher interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Stats() Stats
	Close() error
}

// Stats is a point-in-time view of cache effectiveness. Entries is only
// tracked by the memory backend.
type Stats struct {
	Backend     string    `json:"backend"`
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Evictions   int64     `json:"evictions"`
	Entries     int64     `json:"entries"`
	LastCleanup time.Time `json:"lastCleanup,omitempty"`
}

// HitRate returns hits as a percentage of lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

var (
	_ Cacher = (*Cache)(nil)
	_ Cacher = (*RedisCache)(nil)
	_ Cacher = (*BadgerCache)(nil)
)
