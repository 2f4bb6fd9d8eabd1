// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/cinemora/internal/config"
	"github.com/tomtom215/cinemora/internal/models"
	"github.com/tomtom215/cinemora/internal/tvmaze"
)

type fakeStore struct {
	existing map[string]struct{}
	batches  [][]models.Series
	admin    *models.User
	hash     string
	keywords []string
	genre    string
}

func (f *fakeStore) ExternalIDs(context.Context) (map[string]struct{}, error) {
	if f.existing == nil {
		return map[string]struct{}{}, nil
	}
	return f.existing, nil
}

func (f *fakeStore) InsertSeriesBatch(_ context.Context, batch []models.Series) (int, error) {
	f.batches = append(f.batches, append([]models.Series(nil), batch...))
	return len(batch), nil
}

func (f *fakeStore) UpsertAdmin(_ context.Context, name, email, hash string) (*models.User, bool, error) {
	created := f.admin == nil
	f.hash = hash
	f.admin = &models.User{ID: 1, Name: name, Email: email, Role: models.RoleAdmin}
	return f.admin, created, nil
}

func (f *fakeStore) SoftDeleteMatching(_ context.Context, keywords ...string) (int, error) {
	f.keywords = keywords
	return 3, nil
}

func (f *fakeStore) RemoveGenre(_ context.Context, genre string) (int, error) {
	f.genre = genre
	return 2, nil
}

// pagedSource serves fixed pages and then reports the end of the index.
type pagedSource struct {
	pages    [][]*tvmaze.Show
	requests int
}

func (p *pagedSource) ShowsPage(_ context.Context, page int) ([]*tvmaze.Show, error) {
	p.requests++
	if page >= len(p.pages) {
		return []*tvmaze.Show{}, nil
	}
	return p.pages[page], nil
}

func show(id int64, platform, language string) *tvmaze.Show {
	return &tvmaze.Show{
		ID:         id,
		Name:       "Show " + string(rune('A'+id%26)),
		Language:   language,
		WebChannel: &tvmaze.Channel{Name: platform},
	}
}

func newTestRunner(t *testing.T, store Store, source ShowSource) *Runner {
	t.Helper()
	cfg := &config.CatalogConfig{
		HindiTarget:   2,
		GlobalTarget:  2,
		MaxPages:      5,
		PageDelay:     time.Hour,
		ChunkSize:     2,
		LockPath:      filepath.Join(t.TempDir(), "locks", "catalog.lock"),
		AdminEmail:    "admin@cinemora.local",
		AdminPassword: "Admin@123",
	}
	r := NewRunner(cfg, store, source, bcrypt.MinCost)
	r.sleep = func(context.Context, time.Duration) error { return nil }
	return r
}

func TestSeedFromTVMaze(t *testing.T) {
	store := &fakeStore{existing: map[string]struct{}{"5": {}}}
	source := &pagedSource{pages: [][]*tvmaze.Show{
		{
			show(1, "Netflix", "Hindi"),
			show(2, "Netflix", "English"),
			show(3, "Hulu", "English"),   // platform not allowed
			show(5, "Netflix", "English"), // already catalogued
		},
		{
			show(6, "ZEE5", "Hindi"),
			show(7, "SonyLIV", "Hindi"), // hindi bucket already full
			show(8, "Prime Video", "English"),
			show(9, "Netflix", "English"), // global bucket already full
		},
		{show(10, "Netflix", "English")},
	}}
	r := newTestRunner(t, store, source)

	report, err := r.SeedFromTVMaze(context.Background())
	if err != nil {
		t.Fatalf("SeedFromTVMaze: %v", err)
	}
	if report.Hindi != 2 || report.Global != 2 {
		t.Errorf("buckets = %d hindi / %d global, want 2/2", report.Hindi, report.Global)
	}
	if report.Inserted != 4 || report.Skipped != 1 {
		t.Errorf("inserted/skipped = %d/%d, want 4/1", report.Inserted, report.Skipped)
	}
	if source.requests != 2 {
		t.Errorf("pages requested = %d, want 2 (targets met early)", source.requests)
	}
	if len(store.batches) != 2 {
		t.Fatalf("batches = %d, want 2 chunks of 2", len(store.batches))
	}
	first := store.batches[0]
	if *first[0].ExternalID != "1" || *first[1].ExternalID != "6" {
		t.Errorf("Hindi shows must be inserted first, got %s, %s", *first[0].ExternalID, *first[1].ExternalID)
	}
}

func TestSeedFromTVMazeNothingSelected(t *testing.T) {
	r := newTestRunner(t, &fakeStore{}, &pagedSource{})
	if _, err := r.SeedFromTVMaze(context.Background()); !errors.Is(err, ErrNoShows) {
		t.Errorf("error = %v, want ErrNoShows", err)
	}
}

func TestSeedAdmin(t *testing.T) {
	store := &fakeStore{}
	r := newTestRunner(t, store, nil)

	user, created, err := r.SeedAdmin(context.Background())
	if err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}
	if !created || user.Role != models.RoleAdmin || user.Name != "Cinemora Admin" {
		t.Errorf("SeedAdmin = %+v, created=%v", user, created)
	}
	if bcrypt.CompareHashAndPassword([]byte(store.hash), []byte("Admin@123")) != nil {
		t.Error("stored hash does not match the configured password")
	}

	if _, created, _ = r.SeedAdmin(context.Background()); created {
		t.Error("second run reported created=true")
	}
}

func TestSeedDemoSeries(t *testing.T) {
	store := &fakeStore{}
	r := newTestRunner(t, store, nil)

	n, err := r.SeedDemoSeries(context.Background(), 0)
	if err != nil {
		t.Fatalf("SeedDemoSeries: %v", err)
	}
	if n != DefaultDemoCount {
		t.Errorf("inserted = %d, want %d", n, DefaultDemoCount)
	}

	allowed := map[string]bool{}
	for _, g := range DemoGenres {
		allowed[g] = true
	}
	for _, s := range store.batches[0] {
		if *s.ReleaseYear < 2000 || *s.ReleaseYear > 2024 {
			t.Errorf("%s: year %d out of range", s.Title, *s.ReleaseYear)
		}
		if len(s.Genres) < 1 || len(s.Genres) > 3 {
			t.Errorf("%s: %d genres", s.Title, len(s.Genres))
		}
		seen := map[string]bool{}
		for _, g := range s.Genres {
			if !allowed[g] || seen[g] {
				t.Errorf("%s: bad or repeated genre %q", s.Title, g)
			}
			seen[g] = true
		}
		if s.PosterPath == nil || !strings.HasPrefix(*s.PosterPath, "https://") {
			t.Errorf("%s: missing poster", s.Title)
		}
	}
}

func TestCleanups(t *testing.T) {
	store := &fakeStore{}
	r := newTestRunner(t, store, nil)
	ctx := context.Background()

	removed, err := r.CleanupAdultContent(ctx)
	if err != nil || removed != 3 {
		t.Errorf("CleanupAdultContent = %d, %v", removed, err)
	}
	if len(store.keywords) != len(AdultKeywords) {
		t.Errorf("keywords passed = %v", store.keywords)
	}

	updated, err := r.CleanupGenre(ctx, "  Drama ")
	if err != nil || updated != 2 || store.genre != "Drama" {
		t.Errorf("CleanupGenre = %d, %v (genre %q)", updated, err, store.genre)
	}

	if _, err := r.CleanupGenre(ctx, " "); err == nil {
		t.Error("CleanupGenre(blank) succeeded")
	}
}

func TestJobsAreExclusive(t *testing.T) {
	r := newTestRunner(t, &fakeStore{}, nil)

	if _, err := r.CleanupAdultContent(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}

	other := flock.New(r.cfg.LockPath)
	ok, err := other.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock = %v, %v", ok, err)
	}
	defer func() { _ = other.Unlock() }()

	if _, err := r.CleanupAdultContent(context.Background()); !errors.Is(err, ErrLocked) {
		t.Errorf("error = %v, want ErrLocked", err)
	}
}
