// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/tomtom215/cinemora/internal/auth"
	"github.com/tomtom215/cinemora/internal/logging"
	"github.com/tomtom215/cinemora/internal/models"
	"github.com/tomtom215/cinemora/internal/tvmaze"
)

// DefaultDemoCount is the number of demo series seeded when none is given.
const DefaultDemoCount = 100

// DemoGenres are drawn from when building demo series.
var DemoGenres = []string{"Action", "Comedy", "Sci-Fi", "Horror", "Thriller", "Romance", "Crime", "Fantasy"}

// ErrNoShows is returned when a TVMaze seed run selects nothing.
var ErrNoShows = errors.New("no shows selected from TVMaze")

// SeedReport summarizes a TVMaze seed run.
type SeedReport struct {
	Pages    int `json:"pages"`
	Hindi    int `json:"hindi"`
	Global   int `json:"global"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// SeedFromTVMaze walks the TVMaze show index and inserts clean shows,
// Hindi ones first, until both buckets reach their targets or the page
// limit is hit. Shows whose external id is already catalogued are skipped.
func (r *Runner) SeedFromTVMaze(ctx context.Context) (*SeedReport, error) {
	if r.source == nil {
		return nil, errors.New("seed tvmaze: no TVMaze client configured")
	}
	report := &SeedReport{}
	err := r.withLock(ctx, "seed_tvmaze", func() (int, error) {
		if err := r.seedFromTVMaze(ctx, report); err != nil {
			return 0, err
		}
		return report.Inserted, nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (r *Runner) seedFromTVMaze(ctx context.Context, report *SeedReport) error {
	existing, err := r.store.ExternalIDs(ctx)
	if err != nil {
		return err
	}

	hindiTarget, globalTarget := r.cfg.HindiTarget, r.cfg.GlobalTarget
	seen := make(map[int64]bool)
	var hindi, global []*tvmaze.Show

	for page := 0; page < r.cfg.MaxPages; page++ {
		shows, err := r.source.ShowsPage(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logging.Warn().Err(err).Int("page", page).Msg("Failed to fetch TVMaze page, seeding what was collected")
			break
		}
		report.Pages++
		if len(shows) == 0 {
			break
		}

		for _, show := range shows {
			if show == nil || seen[show.ID] || !tvmaze.IsCleanShow(show) {
				continue
			}
			seen[show.ID] = true
			if _, ok := existing[strconv.FormatInt(show.ID, 10)]; ok {
				report.Skipped++
				continue
			}
			if tvmaze.IsHindi(show) {
				if len(hindi) < hindiTarget {
					hindi = append(hindi, show)
				}
			} else if len(global) < globalTarget {
				global = append(global, show)
			}
		}

		logging.Info().Int("page", page).Int("shows", len(shows)).
			Int("hindi", len(hindi)).Int("global", len(global)).Msg("Collected TVMaze page")

		if len(hindi) >= hindiTarget && len(global) >= globalTarget {
			break
		}
		if page+1 < r.cfg.MaxPages {
			if err := r.sleep(ctx, r.cfg.PageDelay); err != nil {
				return err
			}
		}
	}

	report.Hindi, report.Global = len(hindi), len(global)
	selected := make([]models.Series, 0, len(hindi)+len(global))
	for _, show := range append(hindi, global...) {
		selected = append(selected, tvmaze.MapShow(show))
	}
	if len(selected) == 0 {
		return ErrNoShows
	}

	chunk := r.cfg.ChunkSize
	if chunk <= 0 {
		chunk = 50
	}
	for start := 0; start < len(selected); start += chunk {
		end := min(start+chunk, len(selected))
		n, err := r.store.InsertSeriesBatch(ctx, selected[start:end])
		if err != nil {
			return fmt.Errorf("insert chunk %d-%d: %w", start, end, err)
		}
		report.Inserted += n
		report.Skipped += (end - start) - n
	}
	return nil
}

// SeedAdmin creates the configured admin account or resets its password
// and role. created reports whether the account is new.
func (r *Runner) SeedAdmin(ctx context.Context) (user *models.User, created bool, err error) {
	err = r.withLock(ctx, "seed_admin", func() (int, error) {
		if r.cfg.AdminEmail == "" || r.cfg.AdminPassword == "" {
			return 0, errors.New("seed admin: ADMIN_EMAIL and ADMIN_PASSWORD are required")
		}
		hash, err := auth.HashPassword(r.cfg.AdminPassword, r.bcryptCost)
		if err != nil {
			return 0, err
		}
		name := r.cfg.AdminName
		if name == "" {
			name = "Cinemora Admin"
		}
		user, created, err = r.store.UpsertAdmin(ctx, name, r.cfg.AdminEmail, hash)
		if err != nil {
			return 0, err
		}
		return 1, nil
	})
	return user, created, err
}

// SeedDemoSeries inserts n placeholder series with random genres and
// release years. n <= 0 seeds DefaultDemoCount.
func (r *Runner) SeedDemoSeries(ctx context.Context, n int) (int, error) {
	if n <= 0 {
		n = DefaultDemoCount
	}
	inserted := 0
	err := r.withLock(ctx, "seed_demo", func() (int, error) {
		batch := make([]models.Series, 0, n)
		for i := 1; i <= n; i++ {
			batch = append(batch, r.demoSeries(i))
		}
		var err error
		inserted, err = r.store.InsertSeriesBatch(ctx, batch)
		return inserted, err
	})
	return inserted, err
}

func (r *Runner) demoSeries(i int) models.Series {
	year := 2000 + r.rng.IntN(25)
	count := 1 + r.rng.IntN(3)
	genres := make([]string, 0, count)
	for _, idx := range r.rng.Perm(len(DemoGenres))[:count] {
		genres = append(genres, DemoGenres[idx])
	}
	overview := fmt.Sprintf("This is a placeholder description for Demo Series %d.", i)
	poster := fmt.Sprintf("https://picsum.photos/seed/cinemora-%d/300/450", i)
	return models.Series{
		Title:       fmt.Sprintf("Demo Series %d", i),
		Overview:    &overview,
		PosterPath:  &poster,
		Genres:      genres,
		ReleaseYear: &year,
	}
}
