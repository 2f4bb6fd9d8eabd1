// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core tables and their id sequences
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// Referential integrity between reviews/favorites and users/series is
// enforced by the store methods. DuckDB foreign keys block the updates the
// aggregate recompute performs on series rows.
var tableCreationQueries = []string{
	`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS series_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS reviews_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS favorites_id_seq START 1`,

	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS series (
		id BIGINT PRIMARY KEY DEFAULT nextval('series_id_seq'),
		external_id TEXT UNIQUE,
		title TEXT NOT NULL,
		overview TEXT,
		poster_path TEXT,
		backdrop_path TEXT,
		genres TEXT NOT NULL DEFAULT '[]',
		release_year INTEGER,
		average_rating DOUBLE NOT NULL DEFAULT 0,
		reviews_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		deleted_at TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id BIGINT PRIMARY KEY DEFAULT nextval('reviews_id_seq'),
		user_id BIGINT NOT NULL,
		series_id BIGINT NOT NULL,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 10),
		text TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, series_id)
	)`,

	`CREATE TABLE IF NOT EXISTS favorites (
		id BIGINT PRIMARY KEY DEFAULT nextval('favorites_id_seq'),
		user_id BIGINT NOT NULL,
		series_id BIGINT NOT NULL,
		added_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, series_id)
	)`,
}

// createIndexes creates the secondary indexes used by listings
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_reviews_series ON reviews(series_id)`,
		`CREATE INDEX IF NOT EXISTS idx_favorites_user ON favorites(user_id)`,
	}
	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}
