// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

// Package models defines the domain types shared by the store, the API
// handlers and the catalog jobs.
//
// JSON tags use camelCase because the single-page frontend reads these
// shapes directly (averageRating, posterPath, totalPages, ...).
package models
