// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package main

import (
	"context"
	"sync"

	"github.com/tomtom215/cinemora/internal/cache"
	"github.com/tomtom215/cinemora/internal/catalog"
	"github.com/tomtom215/cinemora/internal/config"
	"github.com/tomtom215/cinemora/internal/database"
	"github.com/tomtom215/cinemora/internal/logging"
	"github.com/tomtom215/cinemora/internal/tvmaze"
)

// commandContext holds state shared by every subcommand. Configuration is
// loaded once; the store is opened per command and closed when it returns.
type commandContext struct {
	verbose bool

	loadConfig func() (*config.Config, error)

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext() *commandContext {
	return &commandContext{loadConfig: config.LoadForMaintenance}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := c.loadConfig()
		if err != nil {
			c.configErr = err
			return
		}
		level := cfg.Logging.Level
		if c.verbose {
			level = "debug"
		}
		logging.Init(logging.Config{
			Level:  level,
			Format: cfg.Logging.Format,
			Caller: cfg.Logging.Caller,
		})
		c.config = cfg
	})
	return c.config, c.configErr
}

// withStore opens the database for the duration of fn.
func (c *commandContext) withStore(fn func(cfg *config.Config, db *database.DB) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing database")
		}
	}()
	return fn(cfg, db)
}

// runner builds a catalog job runner. The TVMaze client is only created
// for jobs that read the show index.
func (c *commandContext) runner(cfg *config.Config, db *database.DB, withSource bool) *catalog.Runner {
	var source catalog.ShowSource
	if withSource {
		source = tvmaze.NewClient(&cfg.TVMaze, cache.New(cfg.TVMaze.CacheTTL))
	}
	return catalog.NewRunner(&cfg.Catalog, db, source, cfg.Security.BcryptCost)
}

// invalidateSharedCache clears the server's response cache after a job
// changed the catalog. Only the Redis backend is reachable from another
// process; memory caches expire on their own and Badger is locked by the
// running server.
func (c *commandContext) invalidateSharedCache(ctx context.Context, cfg *config.Config) {
	if cfg.Cache.Backend != cache.BackendRedis {
		return
	}
	shared, err := cache.NewFromConfig(ctx, &cfg.Cache)
	if err != nil {
		logging.Warn().Err(err).Msg("Could not connect to shared cache, entries will expire by TTL")
		return
	}
	defer func() { _ = shared.Close() }()
	if err := shared.Clear(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to clear shared cache")
		return
	}
	logging.Info().Str("backend", cfg.Cache.Backend).Msg("Shared cache cleared")
}
