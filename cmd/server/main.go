// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

// Package main is the entry point for the Cinemora API server.
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Database: DuckDB store with versioned migrations
//  3. Cache: memory, Redis or Badger backend (CACHE_BACKEND)
//  4. Authentication: JWT manager and Casbin policy for /api/admin
//  5. TVMaze client for the external lookup endpoints
//  6. Audit store in DuckDB (AUDIT_ENABLED) and the live feed hub
//  7. Supervisor tree: HTTP server, feed hub, audit writer and, for the
//     memory cache, the janitor
//
// SIGINT and SIGTERM cancel the tree; the HTTP server drains in-flight
// requests for up to SERVER_TIMEOUT before the store is closed.
//
// Catalog maintenance (seeding, cleanup) is done with the separate
// cinemora command.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cinemora/internal/api"
	"github.com/tomtom215/cinemora/internal/audit"
	"github.com/tomtom215/cinemora/internal/auth"
	"github.com/tomtom215/cinemora/internal/authz"
	"github.com/tomtom215/cinemora/internal/cache"
	"github.com/tomtom215/cinemora/internal/config"
	"github.com/tomtom215/cinemora/internal/database"
	"github.com/tomtom215/cinemora/internal/logging"
	"github.com/tomtom215/cinemora/internal/supervisor"
	"github.com/tomtom215/cinemora/internal/supervisor/services"
	"github.com/tomtom215/cinemora/internal/tvmaze"
	"github.com/tomtom215/cinemora/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Str("cache_backend", cfg.Cache.Backend).
		Msg("Starting Cinemora")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	responseCache, err := cache.NewFromConfig(ctx, &cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer func() {
		if err := responseCache.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing cache")
		}
	}()

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return fmt.Errorf("initialize JWT manager: %w", err)
	}

	enforcer, err := authz.NewEnforcer(&authz.EnforcerConfig{
		ModelPath:      cfg.Security.AuthzModelPath,
		PolicyPath:     cfg.Security.AuthzPolicyPath,
		ReloadInterval: time.Minute,
	})
	if err != nil {
		return fmt.Errorf("initialize authorization: %w", err)
	}
	defer enforcer.Close()

	tvmazeClient := tvmaze.NewClient(&cfg.TVMaze, responseCache)

	wsHub := websocket.NewHub()

	var auditLogger *audit.Logger
	if cfg.Audit.Enabled {
		store := audit.NewDuckDBStore(db.Conn())
		if err := store.CreateTable(ctx); err != nil {
			return fmt.Errorf("initialize audit store: %w", err)
		}
		auditLogger = audit.NewLogger(store, &cfg.Audit)
	}

	handler := api.NewHandler(db, responseCache, jwtManager, tvmazeClient, cfg, wsHub)
	if auditLogger != nil {
		handler.SetAuditLogger(auditLogger)
	}
	router := api.NewRouter(handler,
		auth.NewMiddleware(jwtManager),
		authz.NewMiddleware(enforcer),
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)),
	)

	server := &http.Server{
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	if sweeper, ok := responseCache.(services.Sweeper); ok {
		tree.AddMaintenanceService(services.NewCacheJanitorService(sweeper, cfg.Cache.Backend, cfg.Cache.CleanupInterval))
		logging.Info().Dur("interval", cfg.Cache.CleanupInterval).Msg("Cache janitor added to supervisor tree")
	}
	if auditLogger != nil {
		tree.AddMaintenanceService(auditLogger)
		logging.Info().Dur("retention", cfg.Audit.Retention).Msg("Audit logger added to supervisor tree")
	}
	tree.AddAPIService(wsHub)
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.Timeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().Str("addr", addr).Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	return nil
}
