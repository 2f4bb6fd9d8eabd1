// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package database

import (
	"errors"
	"strings"
)

// Store errors. Handlers map them to HTTP statuses.
var (
	ErrNotFound  = errors.New("record not found")
	ErrConflict  = errors.New("record already exists")
	ErrForbidden = errors.New("not the owner of this record")
)

// isUniqueViolation reports whether err is a DuckDB constraint error raised
// by a PRIMARY KEY or UNIQUE index.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Constraint Error") &&
		(strings.Contains(msg, "Duplicate key") || strings.Contains(msg, "unique"))
}
