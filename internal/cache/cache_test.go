// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(ttl time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := New(ttl)
	c.now = clock.Now
	return c, clock
}

func TestCacheBasicOperations(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(time.Minute)

	if err := c.Set(ctx, "key1", []byte("value1"), 0); err != nil {
		t.Fatal(err)
	}
	value, ok := c.Get(ctx, "key1")
	if !ok {
		t.Fatal("expected key1 to exist")
	}
	if string(value) != "value1" {
		t.Errorf("Get(key1) = %q, want value1", value)
	}

	if _, ok := c.Get(ctx, "key2"); ok {
		t.Error("expected key2 to be missing")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %+v, want 1 hit 1 miss", stats)
	}
	if stats.HitRate() != 50 {
		t.Errorf("HitRate() = %v, want 50", stats.HitRate())
	}
}

func TestCacheExpiresOnRead(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(time.Hour)

	_ = c.Set(ctx, "series:list", []byte("page"), 0)
	clock.Advance(59 * time.Minute)
	if _, ok := c.Get(ctx, "series:list"); !ok {
		t.Fatal("entry expired early")
	}

	clock.Advance(time.Minute)
	if _, ok := c.Get(ctx, "series:list"); ok {
		t.Fatal("entry should be expired exactly at its TTL")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, expired entry should be removed on read", c.Len())
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestCacheCustomTTL(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(time.Hour)

	_ = c.Set(ctx, "short", []byte("x"), 10*time.Second)
	_ = c.Set(ctx, "long", []byte("y"), 0)
	clock.Advance(11 * time.Second)

	if _, ok := c.Get(ctx, "short"); ok {
		t.Error("short entry should have expired")
	}
	if _, ok := c.Get(ctx, "long"); !ok {
		t.Error("long entry should still be present")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(time.Minute)

	for i := 0; i < 3; i++ {
		_ = c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), 0)
	}
	_ = c.Delete(ctx, "k0")
	_ = c.Delete(ctx, "missing")
	if _, ok := c.Get(ctx, "k0"); ok {
		t.Error("k0 should be deleted")
	}

	_ = c.Clear(ctx)
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	if got := c.Stats().Evictions; got != 3 {
		t.Errorf("Evictions = %d, want 3", got)
	}
}

func TestCacheCleanup(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(time.Minute)

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_ = c.Set(ctx, "c", []byte("3"), 5*time.Minute)
	clock.Advance(2 * time.Minute)

	if removed := c.Cleanup(); removed != 2 {
		t.Errorf("Cleanup() = %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if c.Stats().LastCleanup.IsZero() {
		t.Error("LastCleanup not recorded")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n%4)
			for j := 0; j < 200; j++ {
				_ = c.Set(ctx, key, []byte("v"), 0)
				c.Get(ctx, key)
				if j%50 == 0 {
					_ = c.Clear(ctx)
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestNewDefaultsTTL(t *testing.T) {
	if got := New(0).TTL(); got != DefaultTTL {
		t.Errorf("New(0).TTL() = %v, want %v", got, DefaultTTL)
	}
}
