// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

// Package testinfra starts throwaway containers for integration tests.
// The helpers are compiled only with the integration build tag:
//
//	go test -tags integration ./internal/cache/...
package testinfra
