// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// GenerateKey builds a compact key from a namespace and request parameters.
// Map parameters serialize with sorted keys, so equal maps give equal keys.
func GenerateKey(namespace string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", namespace, hash[:16])
}

// GetJSON decodes the value stored under key into a T. A value that no
// longer decodes is deleted and reported as a miss.
func GetJSON[T any](ctx context.Context, c Cacher, key string) (T, bool) {
	var out T
	data, ok := c.Get(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		_ = c.Delete(ctx, key)
		var zero T
		return zero, false
	}
	return out, true
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, c Cacher, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %s: %w", key, err)
	}
	return c.Set(ctx, key, data, ttl)
}
