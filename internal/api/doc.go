// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

/*
Package api implements the Cinemora REST API on a chi router.

Public catalog reads (series list, series detail, genres) are served
through the configured cache and keyed by their query parameters. Any
review or admin write clears the whole cache, since a single review
changes the aggregates shown by every list that contains its series.

Authentication is a bearer JWT checked by auth.Middleware; /api/admin is
additionally gated by the Casbin policy in package authz.

Error responses share one shape:

	{"message": "Series not found", "code": "NOT_FOUND"}
*/
package api
