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
	"strings"

	"github.com/tomtom215/cinemora/internal/models"
)

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// normalizeEmail lowercases and trims an address so lookups are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser inserts a new account. A taken email returns ErrConflict.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash, role string) (*models.User, error) {
	if role == "" {
		role = models.RoleUser
	}
	if !models.IsValidRole(role) {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	now := db.now()
	row := db.conn.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING `+userColumns,
		strings.TrimSpace(name), normalizeEmail(email), passwordHash, role, now, now)

	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// GetUserByEmail looks an account up by address.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, normalizeEmail(email))
	u, err := scanUser(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, err
}

// GetUserByID looks an account up by id.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, err
}

// UpdateUser applies a partial profile update. Moving to an address held by
// another account returns ErrConflict.
func (db *DB) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	current, err := db.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := current.Name
	if upd.Name != nil {
		name = strings.TrimSpace(*upd.Name)
	}
	email := current.Email
	if upd.Email != nil {
		email = normalizeEmail(*upd.Email)
	}

	if email != current.Email {
		var taken int
		if err := db.conn.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM users WHERE email = ? AND id <> ?`, email, id).Scan(&taken); err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken > 0 {
			return nil, ErrConflict
		}
	}

	row := db.conn.QueryRowContext(ctx,
		`UPDATE users SET name = ?, email = ?, updated_at = ? WHERE id = ? RETURNING `+userColumns,
		name, email, db.now(), id)
	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

// UserStats counts the reviews and favorites a user holds.
func (db *DB) UserStats(ctx context.Context, id int64) (models.UserStats, error) {
	var stats models.UserStats
	err := db.conn.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM reviews WHERE user_id = ?),
			(SELECT COUNT(*) FROM favorites WHERE user_id = ?)`,
		id, id).Scan(&stats.ReviewsCount, &stats.FavoritesCount)
	if err != nil {
		return stats, fmt.Errorf("failed to count user activity: %w", err)
	}
	return stats, nil
}

// UpsertAdmin creates the admin account or, when the email exists, resets
// its password and promotes it. It reports whether a new row was created.
func (db *DB) UpsertAdmin(ctx context.Context, name, email, passwordHash string) (*models.User, bool, error) {
	existing, err := db.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrNotFound):
		u, err := db.CreateUser(ctx, name, email, passwordHash, models.RoleAdmin)
		return u, err == nil, err
	case err != nil:
		return nil, false, err
	}

	row := db.conn.QueryRowContext(ctx,
		`UPDATE users SET password_hash = ?, role = ?, updated_at = ? WHERE id = ? RETURNING `+userColumns,
		passwordHash, models.RoleAdmin, db.now(), existing.ID)
	u, err := scanUser(row)
	if err != nil {
		return nil, false, fmt.Errorf("failed to promote admin: %w", err)
	}
	return u, false, nil
}
