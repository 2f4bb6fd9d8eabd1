// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

// Command cinemora runs catalog maintenance jobs against the Cinemora
// database: seeding from TVMaze, creating the admin account, removing
// unwanted content and inspecting the catalog.
//
// Jobs share the server's configuration (config.yaml and environment) and
// take an exclusive lock on CATALOG_LOCK_PATH, so two jobs never write the
// catalog concurrently. When the server uses the Redis cache backend, jobs
// that change the catalog clear it afterwards.
//
// Usage:
//
//	cinemora seed tvmaze
//	cinemora seed admin
//	cinemora seed demo --count 50
//	cinemora cleanup adult
//	cinemora cleanup genre Drama
//	cinemora series list --genre Comedy --limit 20
//	cinemora migrate
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand(newCommandContext())
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
