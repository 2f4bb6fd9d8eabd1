// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

// Package catalog holds the maintenance jobs behind the cinemora CLI:
// seeding from TVMaze, seeding demo data and the admin account, and the
// content and genre cleanups. Jobs serialize on a file lock so two
// invocations never write the catalog at the same time.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/tomtom215/cinemora/internal/config"
	"github.com/tomtom215/cinemora/internal/logging"
	"github.com/tomtom215/cinemora/internal/metrics"
	"github.com/tomtom215/cinemora/internal/models"
	"github.com/tomtom215/cinemora/internal/tvmaze"
)

// ErrLocked is returned when another catalog job holds the lock.
var ErrLocked = errors.New("another catalog job is already running")

// Store is the part of the database the jobs write to.
type Store interface {
	ExternalIDs(ctx context.Context) (map[string]struct{}, error)
	InsertSeriesBatch(ctx context.Context, batch []models.Series) (int, error)
	UpsertAdmin(ctx context.Context, name, email, passwordHash string) (*models.User, bool, error)
	SoftDeleteMatching(ctx context.Context, keywords ...string) (int, error)
	RemoveGenre(ctx context.Context, genre string) (int, error)
}

// ShowSource pages through the TVMaze show index.
type ShowSource interface {
	ShowsPage(ctx context.Context, page int) ([]*tvmaze.Show, error)
}

// Runner executes catalog jobs.
type Runner struct {
	cfg        *config.CatalogConfig
	store      Store
	source     ShowSource
	bcryptCost int
	lock       *flock.Flock
	rng        *rand.Rand

	// sleep waits between index pages; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRunner wires a job runner. source may be nil for jobs that do not
// talk to TVMaze.
func NewRunner(cfg *config.CatalogConfig, store Store, source ShowSource, bcryptCost int) *Runner {
	return &Runner{
		cfg:        cfg,
		store:      store,
		source:     source,
		bcryptCost: bcryptCost,
		lock:       flock.New(cfg.LockPath),
		rng:        rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x636e6d72)),
		sleep:      sleepContext,
	}
}

// withLock runs fn while holding the catalog lock and records the job.
func (r *Runner) withLock(ctx context.Context, job string, fn func() (int, error)) error {
	if dir := filepath.Dir(r.cfg.LockPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create lock directory: %w", err)
		}
	}

	ok, err := r.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !ok {
		return ErrLocked
	}
	defer func() {
		if err := r.lock.Unlock(); err != nil {
			logging.Warn().Err(err).Str("lock", r.cfg.LockPath).Msg("Failed to release catalog lock")
		}
	}()

	start := time.Now()
	logger := logging.Ctx(ctx).With().Str("job", job).Logger()
	logger.Info().Str("lock", r.cfg.LockPath).Msg("Catalog job started")

	rows, err := fn()
	metrics.RecordCatalogJob(job, time.Since(start), rows)
	if err != nil {
		logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("Catalog job failed")
		return err
	}
	logger.Info().Int("rows", rows).Dur("duration", time.Since(start)).Msg("Catalog job finished")
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
