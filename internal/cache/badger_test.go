// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package cache

import (
	"context"
	"testing"
	"time"
)

func TestBadgerCache(t *testing.T) {
	ctx := context.Background()
	c, err := OpenBadger("", "cinemora:", time.Minute)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("expected miss")
	}

	if err := c.Set(ctx, "series:1", []byte(`{"id":1}`), 0); err != nil {
		t.Fatal(err)
	}
	data, ok := c.Get(ctx, "series:1")
	if !ok || string(data) != `{"id":1}` {
		t.Fatalf("Get() = %q, %v", data, ok)
	}

	if err := c.Delete(ctx, "series:1"); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get(ctx, "series:1"); ok {
		t.Error("deleted key still present")
	}

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	for _, k := range []string{"a", "b"} {
		if _, ok := c.Get(ctx, k); ok {
			t.Errorf("%s survived Clear", k)
		}
	}

	stats := c.Stats()
	if stats.Backend != BackendBadger || stats.Hits != 1 {
		t.Errorf("Stats() = %+v", stats)
	}
}
