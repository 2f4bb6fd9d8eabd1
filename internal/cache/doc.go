// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

/*
Package cache provides the response cache used by the API handlers and the
TVMaze client.

# Backends

  - memory (default): a map guarded by sync.RWMutex. Entries expire after
    CACHE_TTL and are removed when read after expiry, or by Cleanup which
    the supervisor runs every CACHE_CLEANUP_INTERVAL.
  - redis: go-redis v9, keys under CACHE_PREFIX, native TTLs.
  - badger: embedded Badger v4 store at BADGER_PATH, native TTLs.

All backends implement Cacher and store opaque bytes.

# Invalidation

The catalog is small and admin edits are rare, so invalidation is coarse:
any admin mutation of a series and any review mutation calls Clear. Keys are
built with GenerateKey from a namespace and the request parameters:

	key := cache.GenerateKey("series:list", map[string]any{"q": q, "page": page})
	if page, ok := cache.GetJSON[models.SeriesPage](ctx, c, key); ok {
	    return page
	}
*/
package cache
