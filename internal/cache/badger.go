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

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemora/internal/logging"
)

// BadgerCache persists entries in an embedded Badger store. Badger expires
// entries natively, so expiry-on-read comes for free.
type BadgerCache struct {
	db     *badger.DB
	prefix string
	ttl    time.Duration

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// OpenBadger opens (or creates) a Badger cache at path. An empty path keeps
// everything in memory, which is what the tests use.
func OpenBadger(path, prefix string, ttl time.Duration) (*BadgerCache, error) {
	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{logging.WithComponent("badger")})
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &BadgerCache{db: db, prefix: prefix, ttl: ttl}, nil
}

func (c *BadgerCache) key(k string) []byte {
	return []byte(c.prefix + k)
}

func (c *BadgerCache) Get(ctx context.Context, key string) ([]byte, bool) {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(c.key(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Badger cache read failed")
		}
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return data, true
}

func (c *BadgerCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(c.key(key), value).WithTTL(ttl))
	})
	if err != nil {
		return fmt.Errorf("badger set %s: %w", key, err)
	}
	return nil
}

func (c *BadgerCache) Delete(_ context.Context, key string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(c.key(key))
	})
	if err != nil {
		return fmt.Errorf("badger delete %s: %w", key, err)
	}
	c.evictions.Add(1)
	return nil
}

func (c *BadgerCache) Clear(_ context.Context) error {
	if c.prefix == "" {
		if err := c.db.DropAll(); err != nil {
			return fmt.Errorf("badger drop all: %w", err)
		}
		return nil
	}
	if err := c.db.DropPrefix([]byte(c.prefix)); err != nil {
		return fmt.Errorf("badger drop prefix: %w", err)
	}
	return nil
}

func (c *BadgerCache) Stats() Stats {
	return Stats{
		Backend:   BackendBadger,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

func (c *BadgerCache) Close() error {
	return c.db.Close()
}

// badgerLogger routes Badger's internal logging into zerolog. Badger is
// chatty at info level, so info is demoted to debug.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug().Msgf(strings.TrimSpace(format), args...)
}
