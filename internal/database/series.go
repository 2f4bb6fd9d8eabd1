// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemora/internal/models"
	"github.com/tomtom215/cinemora/internal/textmatch"
)

const seriesColumns = `id, external_id, title, overview, poster_path, backdrop_path, genres,
	release_year, average_rating, reviews_count, created_at, updated_at, deleted_at`

func scanSeries(row scanner) (*models.Series, error) {
	s := &models.Series{}
	var externalID, overview, poster, backdrop sql.NullString
	var releaseYear sql.NullInt64
	var deletedAt sql.NullTime
	var genres string

	err := row.Scan(&s.ID, &externalID, &s.Title, &overview, &poster, &backdrop, &genres,
		&releaseYear, &s.AverageRating, &s.ReviewsCount, &s.CreatedAt, &s.UpdatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.ExternalID = nullStringPtr(externalID)
	s.Overview = nullStringPtr(overview)
	s.PosterPath = nullStringPtr(poster)
	s.BackdropPath = nullStringPtr(backdrop)
	if releaseYear.Valid {
		y := int(releaseYear.Int64)
		s.ReleaseYear = &y
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		s.DeletedAt = &t
	}
	s.Genres = decodeGenres(genres)
	return s, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// optionalText maps nil and blank strings to NULL.
func optionalText(s *string) interface{} {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return *s
}

// optionalYear maps nil and zero to NULL.
func optionalYear(y *int) interface{} {
	if y == nil || *y == 0 {
		return nil
	}
	return *y
}

func encodeGenres(genres []string) string {
	if len(genres) == 0 {
		return "[]"
	}
	b, err := json.Marshal(genres)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// decodeGenres tolerates malformed rows and returns an empty list for them.
func decodeGenres(raw string) []string {
	genres := []string{}
	if raw == "" {
		return genres
	}
	if err := json.Unmarshal([]byte(raw), &genres); err != nil {
		return []string{}
	}
	return genres
}

// genreNeedle returns the lowercased JSON string literal of a genre, which
// matches exactly one element of a lowercased genre column.
func genreNeedle(genre string) string {
	b, err := json.Marshal(genre)
	if err != nil {
		return strings.ToLower(genre)
	}
	return strings.ToLower(string(b))
}

func seriesOrderBy(q models.SeriesQuery) string {
	switch q.Filter {
	case models.FilterTrending:
		return `reviews_count DESC, average_rating DESC, created_at DESC, id DESC`
	case models.FilterTopRated:
		return `average_rating DESC, reviews_count DESC, id ASC`
	}
	switch q.Sort {
	case models.SortLatest:
		return `created_at DESC, id DESC`
	case models.SortTitle:
		return `lower(title) ASC, id ASC`
	default:
		return `average_rating DESC, id ASC`
	}
}

// ListSeries returns one page of live series matching the query.
func (db *DB) ListSeries(ctx context.Context, q models.SeriesQuery) (*models.SeriesPage, error) {
	q.Normalize()
	q.Pagination = normalizePage(q.Pagination)

	where := []string{"deleted_at IS NULL"}
	var args []interface{}
	if q.Q != "" {
		where = append(where, "contains(lower(title), ?)")
		args = append(args, strings.ToLower(q.Q))
	}
	if q.Genre != "" {
		where = append(where, "contains(lower(genres), ?)")
		args = append(args, genreNeedle(q.Genre))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM series WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count series: %w", err)
	}

	page := &models.SeriesPage{
		Results:      []models.Series{},
		Page:         q.Page,
		TotalPages:   q.TotalPages(total),
		TotalResults: total,
	}
	if total == 0 {
		return page, nil
	}

	query := `SELECT ` + seriesColumns + ` FROM series WHERE ` + whereClause +
		` ORDER BY ` + seriesOrderBy(q) + limitOffset(q.Pagination)
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanSeries(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		page.Results = append(page.Results, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate series: %w", err)
	}
	return page, nil
}

// GetSeries returns a live series. Soft-deleted rows are not found.
func (db *DB) GetSeries(ctx context.Context, id int64) (*models.Series, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+seriesColumns+` FROM series WHERE id = ? AND deleted_at IS NULL`, id)
	s, err := scanSeries(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to get series: %w", err)
	}
	return s, err
}

// CreateSeries inserts a catalog entry. Title is required.
func (db *DB) CreateSeries(ctx context.Context, in models.SeriesInput) (*models.Series, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, errors.New("series title is required")
	}

	var rating float64
	if in.AverageRating != nil {
		rating = *in.AverageRating
	}
	var count int
	if in.ReviewsCount != nil {
		count = *in.ReviewsCount
	}

	now := db.now()
	row := db.conn.QueryRowContext(ctx, `
		INSERT INTO series (external_id, title, overview, poster_path, backdrop_path, genres,
			release_year, average_rating, reviews_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+seriesColumns,
		optionalText(in.ExternalID), strings.TrimSpace(*in.Title), optionalText(in.Overview),
		optionalText(in.PosterPath), optionalText(in.BackdropPath), encodeGenres(in.Genres),
		optionalYear(in.ReleaseYear), rating, count, now, now)

	s, err := scanSeries(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create series: %w", err)
	}
	return s, nil
}

// UpdateSeries applies a partial update to a live series.
func (db *DB) UpdateSeries(ctx context.Context, id int64, in models.SeriesInput) (*models.Series, error) {
	var sets []string
	var args []interface{}
	add := func(col string, v interface{}) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, errors.New("series title cannot be empty")
		}
		add("title", title)
	}
	if in.ExternalID != nil {
		add("external_id", optionalText(in.ExternalID))
	}
	if in.Overview != nil {
		add("overview", optionalText(in.Overview))
	}
	if in.PosterPath != nil {
		add("poster_path", optionalText(in.PosterPath))
	}
	if in.BackdropPath != nil {
		add("backdrop_path", optionalText(in.BackdropPath))
	}
	if in.Genres != nil {
		add("genres", encodeGenres(in.Genres))
	}
	if in.ReleaseYear != nil {
		add("release_year", optionalYear(in.ReleaseYear))
	}

	if len(sets) == 0 {
		return db.GetSeries(ctx, id)
	}
	add("updated_at", db.now())

	query := `UPDATE series SET ` + strings.Join(sets, ", ") +
		` WHERE id = ? AND deleted_at IS NULL RETURNING ` + seriesColumns
	row := db.conn.QueryRowContext(ctx, query, append(args, id)...)
	s, err := scanSeries(row)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to update series: %w", err)
	}
	return s, nil
}

// SoftDeleteSeries hides a live series from every read path.
func (db *DB) SoftDeleteSeries(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE series SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		db.now(), db.now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete series: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertSeriesBatch inserts series inside one transaction, skipping rows
// whose external id already exists. It returns the number inserted.
func (db *DB) InsertSeriesBatch(ctx context.Context, batch []models.Series) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	inserted := 0
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO series (external_id, title, overview, poster_path, backdrop_path, genres,
				release_year, average_rating, reviews_count, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT DO NOTHING`)
		if err != nil {
			return fmt.Errorf("failed to prepare series insert: %w", err)
		}
		defer stmt.Close()

		now := db.now()
		for i := range batch {
			s := &batch[i]
			created := s.CreatedAt
			if created.IsZero() {
				created = now
			}
			res, err := stmt.ExecContext(ctx,
				optionalText(s.ExternalID), s.Title, optionalText(s.Overview),
				optionalText(s.PosterPath), optionalText(s.BackdropPath), encodeGenres(s.Genres),
				optionalYear(s.ReleaseYear), s.AverageRating, s.ReviewsCount, created, now)
			if err != nil {
				return fmt.Errorf("failed to insert series %q: %w", s.Title, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				inserted += int(n)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// ExternalIDs returns every external id in the catalog, soft-deleted rows
// included.
func (db *DB) ExternalIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT external_id FROM series WHERE external_id IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to query external ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan external id: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// ListAllSeries returns every live series ordered by id.
func (db *DB) ListAllSeries(ctx context.Context) ([]models.Series, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+seriesColumns+` FROM series WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	defer rows.Close()

	var all []models.Series
	for rows.Next() {
		s, err := scanSeries(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		all = append(all, *s)
	}
	return all, rows.Err()
}

// Genres returns the distinct genres of live series, sorted
// case-insensitively. Spelling follows the first occurrence.
func (db *DB) Genres(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT genres FROM series WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	genres := []string{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan genres: %w", err)
		}
		for _, g := range decodeGenres(raw) {
			g = strings.TrimSpace(g)
			key := strings.ToLower(g)
			if g == "" || seen[key] {
				continue
			}
			seen[key] = true
			genres = append(genres, g)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(genres, func(i, j int) bool {
		return strings.ToLower(genres[i]) < strings.ToLower(genres[j])
	})
	return genres, nil
}

// SoftDeleteMatching soft-deletes live series whose title or overview
// contains any keyword, case-insensitively. It returns the affected count.
func (db *DB) SoftDeleteMatching(ctx context.Context, keywords ...string) (int, error) {
	matcher := textmatch.New(keywords...)

	all, err := db.ListAllSeries(ctx)
	if err != nil {
		return 0, err
	}

	var ids []int64
	for i := range all {
		overview := ""
		if all[i].Overview != nil {
			overview = *all[i].Overview
		}
		if matcher.ContainsAny(all[i].Title, overview) {
			ids = append(ids, all[i].ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	now := db.now()
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx,
				`UPDATE series SET deleted_at = ?, updated_at = ? WHERE id = ?`, now, now, id); err != nil {
				return fmt.Errorf("failed to soft-delete series %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// RemoveGenre strips a genre (case-insensitive) from every series that
// lists it and returns the number of series changed.
func (db *DB) RemoveGenre(ctx context.Context, genre string) (int, error) {
	target := strings.ToLower(strings.TrimSpace(genre))
	if target == "" {
		return 0, errors.New("genre is required")
	}

	type change struct {
		id     int64
		genres []string
	}
	var changes []change

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, genres FROM series WHERE contains(lower(genres), ?)`, genreNeedle(target))
	if err != nil {
		return 0, fmt.Errorf("failed to query genres: %w", err)
	}
	for rows.Next() {
		var id int64
		var raw string
		if err := rows.Scan(&id, &raw); err != nil {
			closeQuietly(rows)
			return 0, fmt.Errorf("failed to scan genres: %w", err)
		}
		current := decodeGenres(raw)
		kept := make([]string, 0, len(current))
		for _, g := range current {
			if strings.ToLower(strings.TrimSpace(g)) != target {
				kept = append(kept, g)
			}
		}
		if len(kept) != len(current) {
			changes = append(changes, change{id: id, genres: kept})
		}
	}
	if err := rows.Err(); err != nil {
		closeQuietly(rows)
		return 0, err
	}
	closeQuietly(rows)

	if len(changes) == 0 {
		return 0, nil
	}

	now := db.now()
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		for _, c := range changes {
			if _, err := tx.ExecContext(ctx,
				`UPDATE series SET genres = ?, updated_at = ? WHERE id = ?`,
				encodeGenres(c.genres), now, c.id); err != nil {
				return fmt.Errorf("failed to update genres of series %d: %w", c.id, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(changes), nil
}

// seriesExists reports whether a live series with id exists, inside tx.
func seriesExists(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM series WHERE id = ? AND deleted_at IS NULL`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check series: %w", err)
	}
	return n > 0, nil
}

// recomputeAggregates refreshes the denormalized rating fields of a series
// from its reviews. It must run in the transaction that changed a review.
func recomputeAggregates(ctx context.Context, tx *sql.Tx, seriesID int64, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE series SET
			average_rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE series_id = ?), 0),
			reviews_count = (SELECT COUNT(*) FROM reviews WHERE series_id = ?),
			updated_at = ?
		WHERE id = ?`,
		seriesID, seriesID, now, seriesID)
	if err != nil {
		return fmt.Errorf("failed to recompute series aggregates: %w", err)
	}
	return nil
}
