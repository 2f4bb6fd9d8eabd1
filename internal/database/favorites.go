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

	"github.com/tomtom215/cinemora/internal/models"
)

// AddFavorite puts a live series on the user's list. Returns ErrNotFound
// for a missing series and ErrConflict when it is already listed.
func (db *DB) AddFavorite(ctx context.Context, userID, seriesID int64) (*models.FavoriteWithSeries, error) {
	series, err := db.GetSeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	fav := &models.FavoriteWithSeries{SeriesID: seriesID}
	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO favorites (user_id, series_id, added_at)
		VALUES (?, ?, ?)
		RETURNING id, added_at`,
		userID, seriesID, db.now()).Scan(&fav.ID, &fav.AddedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	count := series.ReviewsCount
	fav.Series = models.SeriesSummary{
		ID:            series.ID,
		Title:         series.Title,
		PosterPath:    series.PosterPath,
		AverageRating: series.AverageRating,
		ReviewsCount:  &count,
	}
	return fav, nil
}

// RemoveFavorite deletes one of the caller's favorites.
func (db *DB) RemoveFavorite(ctx context.Context, id, userID int64) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		var ownerID int64
		err := tx.QueryRowContext(ctx, `SELECT user_id FROM favorites WHERE id = ?`, id).Scan(&ownerID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to look up favorite: %w", err)
		}
		if ownerID != userID {
			return ErrForbidden
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to remove favorite: %w", err)
		}
		return nil
	})
}

// ListFavorites pages a user's favorites, most recently added first.
func (db *DB) ListFavorites(ctx context.Context, userID int64, p models.Pagination) (*models.FavoritePage, error) {
	p = normalizePage(p)

	var total int
	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	page := &models.FavoritePage{
		Results:    []models.FavoriteWithSeries{},
		Page:       p.Page,
		TotalPages: p.TotalPages(total),
		Total:      total,
	}
	if total == 0 {
		return page, nil
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT f.id, f.series_id, f.added_at,
			s.id, s.title, s.poster_path, s.backdrop_path, s.genres, s.release_year,
			s.average_rating, s.reviews_count, s.overview
		FROM favorites f
		JOIN series s ON s.id = f.series_id
		WHERE f.user_id = ?
		ORDER BY f.added_at DESC, f.id DESC`+limitOffset(p), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f models.FavoriteWithSeries
		var poster, backdrop, overview sql.NullString
		var genres string
		var year sql.NullInt64
		var count int
		if err := rows.Scan(&f.ID, &f.SeriesID, &f.AddedAt,
			&f.Series.ID, &f.Series.Title, &poster, &backdrop, &genres, &year,
			&f.Series.AverageRating, &count, &overview); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		f.Series.PosterPath = nullStringPtr(poster)
		f.Series.BackdropPath = nullStringPtr(backdrop)
		f.Series.Overview = nullStringPtr(overview)
		f.Series.Genres = decodeGenres(genres)
		f.Series.ReviewsCount = &count
		if year.Valid {
			y := int(year.Int64)
			f.Series.ReleaseYear = &y
		}
		page.Results = append(page.Results, f)
	}
	return page, rows.Err()
}
