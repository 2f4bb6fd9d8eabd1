// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

// Package database is the DuckDB-backed store for accounts, the series
// catalog, reviews and favorites.
//
// # Files
//
//   - database.go: connection lifecycle, pool tuning, transaction helper
//   - schema.go, migrations.go: tables, sequences, versioned migrations
//   - users.go, series.go, reviews.go, favorites.go: data access
//   - errors.go: ErrNotFound, ErrConflict, ErrForbidden
//
// # Aggregates
//
// series.average_rating and series.reviews_count are derived from the
// reviews table. Every review insert, update and delete recomputes them in
// the transaction that made the change, so readers never see a review
// without its aggregate.
//
// # Soft deletion
//
// Series are never removed. deleted_at marks them hidden and every read
// path used by the API filters on it. External ids of hidden series stay
// reserved so a catalog re-seed does not resurrect them.
package database
