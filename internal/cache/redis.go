// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/cinemora/internal/logging"
)

// clearBatchSize bounds the keys fetched per SCAN and deleted per DEL.
const clearBatchSize = 500

// RedisCache stores entries in Redis under a key prefix so several
// deployments can share one Redis database.
type RedisCache struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// RedisOption configures a RedisCache.
type RedisOption func(*RedisCache)

// WithRedisPrefix sets the key prefix (default "cinemora:").
func WithRedisPrefix(prefix string) RedisOption {
	return func(c *RedisCache) {
		c.prefix = prefix
	}
}

// WithRedisTTL sets the default entry lifetime.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewRedisCache wraps an existing client.
func NewRedisCache(rdb redis.UniversalClient, opts ...RedisOption) *RedisCache {
	c := &RedisCache{
		rdb:    rdb,
		prefix: "cinemora:",
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DialRedis parses a redis:// URL, connects and pings the server.
func DialRedis(ctx context.Context, rawURL string, opts ...RedisOption) (*RedisCache, error) {
	redisOpts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisCache(rdb, opts...), nil
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Redis cache read failed")
		}
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return data, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	if err := c.rdb.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	n, err := c.rdb.Del(ctx, c.key(key)).Result()
	if err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	c.evictions.Add(n)
	return nil
}

// Clear deletes every key under the prefix using SCAN so Redis is never
// blocked by a KEYS call.
func (c *RedisCache) Clear(ctx context.Context) error {
	pattern := escapeGlob(c.prefix) + "*"
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, clearBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
			c.evictions.Add(n)
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// globEscaper quotes every metacharacter of the Redis MATCH glob syntax.
var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`)

// escapeGlob returns s as a literal MATCH pattern.
func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}

func (c *RedisCache) Stats() Stats {
	return Stats{
		Backend:   BackendRedis,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
