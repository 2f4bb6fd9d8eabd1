// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package cache

import (
	"context"
	"fmt"

	"github.com/tomtom215/cinemora/internal/config"
)

// NewFromConfig builds the backend selected by CACHE_BACKEND.
func NewFromConfig(ctx context.Context, cfg *config.CacheConfig) (Cacher, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return New(cfg.TTL), nil
	case BackendRedis:
		return DialRedis(ctx, cfg.RedisURL, WithRedisPrefix(cfg.Prefix), WithRedisTTL(cfg.TTL))
	case BackendBadger:
		return OpenBadger(cfg.BadgerPath, cfg.Prefix, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
