// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package services

import (
	"context"
	"time"

	"github.com/tomtom215/cinemora/internal/logging"
	"github.com/tomtom215/cinemora/internal/metrics"
)

// Sweeper is a cache that must be swept for expired entries. Only the
// in-process memory backend needs this; Redis and Badger expire natively.
type Sweeper interface {
	Cleanup() int
	Len() int
}

// CacheJanitorService periodically removes expired cache entries and
// reports the sweep to Prometheus.
type CacheJanitorService struct {
	cache    Sweeper
	backend  string
	interval time.Duration
	name     string
}

// NewCacheJanitorService creates a janitor that sweeps every interval
// (default 5m).
func NewCacheJanitorService(cache Sweeper, backend string, interval time.Duration) *CacheJanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheJanitorService{
		cache:    cache,
		backend:  backend,
		interval: interval,
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service.
func (j *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *CacheJanitorService) sweep() {
	removed := j.cache.Cleanup()
	entries := j.cache.Len()
	metrics.RecordCacheCleanup(j.backend, removed, entries)
	if removed > 0 {
		logging.Debug().
			Str("service", j.name).
			Int("removed", removed).
			Int("entries", entries).
			Msg("Expired cache entries removed")
	}
}

// String implements fmt.Stringer.
func (j *CacheJanitorService) String() string {
	return j.name
}
