// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

// Package tvmaze is the outbound client for https://api.tvmaze.com and the
// content filter applied to everything it returns.
//
// Only "clean" shows reach callers: not typed adult, no blocked keyword in
// the name, summary or official site, and carried by one of the allowed
// streaming platforms. Search and detail responses are cached through
// internal/cache; the paged show index used by catalog seeding is not.
package tvmaze
