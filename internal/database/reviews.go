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

const reviewWithUserQuery = `
	SELECT r.id, r.user_id, r.series_id, r.rating, r.text, r.created_at, r.updated_at,
		u.id, u.name, u.email
	FROM reviews r
	JOIN users u ON u.id = r.user_id`

func scanReviewWithUser(row scanner) (*models.ReviewWithUser, error) {
	r := &models.ReviewWithUser{}
	err := row.Scan(&r.ID, &r.UserID, &r.SeriesID, &r.Rating, &r.Text, &r.CreatedAt, &r.UpdatedAt,
		&r.User.ID, &r.User.Name, &r.User.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

// GetReview returns a review with its author.
func (db *DB) GetReview(ctx context.Context, id int64) (*models.ReviewWithUser, error) {
	r, err := scanReviewWithUser(db.conn.QueryRowContext(ctx, reviewWithUserQuery+` WHERE r.id = ?`, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return r, err
}

// UpsertReview writes the user's review of a live series. A second review
// by the same user replaces the first; created reports which happened. The
// series aggregates are recomputed in the same transaction.
func (db *DB) UpsertReview(ctx context.Context, userID, seriesID int64, rating int, text string) (review *models.ReviewWithUser, created bool, err error) {
	var reviewID int64

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := seriesExists(ctx, tx, seriesID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}

		now := db.now()
		var existingID int64
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM reviews WHERE user_id = ? AND series_id = ?`, userID, seriesID).Scan(&existingID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if err := tx.QueryRowContext(ctx, `
				INSERT INTO reviews (user_id, series_id, rating, text, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)
				RETURNING id`,
				userID, seriesID, rating, text, now, now).Scan(&reviewID); err != nil {
				return fmt.Errorf("failed to insert review: %w", err)
			}
			created = true
		case err != nil:
			return fmt.Errorf("failed to look up review: %w", err)
		default:
			if _, err := tx.ExecContext(ctx,
				`UPDATE reviews SET rating = ?, text = ?, updated_at = ? WHERE id = ?`,
				rating, text, now, existingID); err != nil {
				return fmt.Errorf("failed to update review: %w", err)
			}
			reviewID = existingID
			created = false
		}

		return recomputeAggregates(ctx, tx, seriesID, now)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, false, ErrConflict
		}
		return nil, false, err
	}

	review, err = db.GetReview(ctx, reviewID)
	return review, created, err
}

// reviewOwner loads the owner and series of a review inside tx and checks
// that userID owns it.
func reviewOwner(ctx context.Context, tx *sql.Tx, id, userID int64) (seriesID int64, err error) {
	var ownerID int64
	err = tx.QueryRowContext(ctx, `SELECT user_id, series_id FROM reviews WHERE id = ?`, id).Scan(&ownerID, &seriesID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up review: %w", err)
	}
	if ownerID != userID {
		return 0, ErrForbidden
	}
	return seriesID, nil
}

// UpdateReview edits the rating and/or text of the caller's own review.
func (db *DB) UpdateReview(ctx context.Context, id, userID int64, upd models.ReviewUpdate) (*models.ReviewWithUser, error) {
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		seriesID, err := reviewOwner(ctx, tx, id, userID)
		if err != nil {
			return err
		}

		now := db.now()
		if upd.Rating != nil {
			if _, err := tx.ExecContext(ctx, `UPDATE reviews SET rating = ?, updated_at = ? WHERE id = ?`,
				*upd.Rating, now, id); err != nil {
				return fmt.Errorf("failed to update review rating: %w", err)
			}
		}
		if upd.Text != nil {
			if _, err := tx.ExecContext(ctx, `UPDATE reviews SET text = ?, updated_at = ? WHERE id = ?`,
				*upd.Text, now, id); err != nil {
				return fmt.Errorf("failed to update review text: %w", err)
			}
		}
		return recomputeAggregates(ctx, tx, seriesID, now)
	})
	if err != nil {
		return nil, err
	}
	return db.GetReview(ctx, id)
}

// DeleteReview removes the caller's own review, recomputes the series and
// returns the series id.
func (db *DB) DeleteReview(ctx context.Context, id, userID int64) (seriesID int64, err error) {
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		seriesID, err = reviewOwner(ctx, tx, id, userID)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		return recomputeAggregates(ctx, tx, seriesID, db.now())
	})
	return seriesID, err
}

// ListReviews pages reviews newest first. A nil seriesID lists every review.
func (db *DB) ListReviews(ctx context.Context, seriesID *int64, p models.Pagination) (*models.ReviewPage[models.ReviewWithUser], error) {
	p = normalizePage(p)

	where := ""
	var args []interface{}
	if seriesID != nil {
		where = ` WHERE r.series_id = ?`
		args = append(args, *seriesID)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM reviews r` + where
	if err := db.conn.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	page := &models.ReviewPage[models.ReviewWithUser]{
		Items:      []models.ReviewWithUser{},
		Page:       p.Page,
		TotalPages: p.TotalPages(total),
		Total:      total,
	}
	if total == 0 {
		return page, nil
	}

	rows, err := db.conn.QueryContext(ctx,
		reviewWithUserQuery+where+` ORDER BY r.created_at DESC, r.id DESC`+limitOffset(p), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		r, err := scanReviewWithUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		page.Items = append(page.Items, *r)
	}
	return page, rows.Err()
}

// ListSeriesReviews pages the reviews of one series, newest first.
func (db *DB) ListSeriesReviews(ctx context.Context, seriesID int64, p models.Pagination) (*models.ReviewPage[models.ReviewWithUser], error) {
	return db.ListReviews(ctx, &seriesID, p)
}

// ListUserReviews pages a user's reviews with the reviewed series attached.
func (db *DB) ListUserReviews(ctx context.Context, userID int64, p models.Pagination) (*models.ReviewPage[models.ReviewWithSeries], error) {
	p = normalizePage(p)

	var total int
	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count user reviews: %w", err)
	}

	page := &models.ReviewPage[models.ReviewWithSeries]{
		Items:      []models.ReviewWithSeries{},
		Page:       p.Page,
		TotalPages: p.TotalPages(total),
		Total:      total,
	}
	if total == 0 {
		return page, nil
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT r.id, r.rating, r.text, r.created_at, r.updated_at,
			s.id, s.title, s.poster_path, s.average_rating
		FROM reviews r
		JOIN series s ON s.id = r.series_id
		WHERE r.user_id = ?
		ORDER BY r.created_at DESC, r.id DESC`+limitOffset(p), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.ReviewWithSeries
		var poster sql.NullString
		if err := rows.Scan(&r.ID, &r.Rating, &r.Text, &r.CreatedAt, &r.UpdatedAt,
			&r.Series.ID, &r.Series.Title, &poster, &r.Series.AverageRating); err != nil {
			return nil, fmt.Errorf("failed to scan user review: %w", err)
		}
		r.Series.PosterPath = nullStringPtr(poster)
		page.Items = append(page.Items, r)
	}
	return page, rows.Err()
}
