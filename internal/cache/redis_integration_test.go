// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/cinemora/internal/testinfra"
)

func TestRedisCacheIntegration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	redisURL := testinfra.StartRedis(t, ctx)

	c, err := DialRedis(ctx, redisURL, WithRedisPrefix("test:"), WithRedisTTL(time.Minute))
	if err != nil {
		t.Fatalf("DialRedis() error = %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "series:1", []byte("one"), 0); err != nil {
		t.Fatal(err)
	}
	if data, ok := c.Get(ctx, "series:1"); !ok || string(data) != "one" {
		t.Fatalf("Get() = %q, %v", data, ok)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Second); err != nil {
		t.Fatal(err)
	}
	time.Sleep(1500 * time.Millisecond)
	if _, ok := c.Get(ctx, "short"); ok {
		t.Error("short-lived key should have expired")
	}

	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	for _, k := range []string{"a", "b", "c", "series:1"} {
		if _, ok := c.Get(ctx, k); ok {
			t.Errorf("%s survived Clear", k)
		}
	}

	// A prefix with glob metacharacters must only clear its own keys.
	globbed, err := DialRedis(ctx, redisURL, WithRedisPrefix("t?[1]:"), WithRedisTTL(time.Minute))
	if err != nil {
		t.Fatalf("DialRedis() error = %v", err)
	}
	defer globbed.Close()
	neighbour, err := DialRedis(ctx, redisURL, WithRedisPrefix("tx1:"), WithRedisTTL(time.Minute))
	if err != nil {
		t.Fatalf("DialRedis() error = %v", err)
	}
	defer neighbour.Close()

	_ = globbed.Set(ctx, "k", []byte("own"), 0)
	_ = neighbour.Set(ctx, "k", []byte("foreign"), 0)
	if err := globbed.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok := globbed.Get(ctx, "k"); ok {
		t.Error("own key survived Clear")
	}
	if _, ok := neighbour.Get(ctx, "k"); !ok {
		t.Error("Clear removed a key under another prefix")
	}
}
