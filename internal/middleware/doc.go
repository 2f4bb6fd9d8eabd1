// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

/*
Package middleware provides the infrastructure middleware shared by every
route: request ids, the access log, Prometheus instrumentation and gzip.

All middleware uses the func(http.Handler) http.Handler shape so it can be
mounted with chi's Use. The router installs them in this order:

	r.Use(middleware.RequestID)         // X-Request-ID + logging context
	r.Use(middleware.RequestLogger)     // one log line per request
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics) // api_requests_total etc.
	r.Use(middleware.Compression)

PrometheusMetrics labels requests with the chi route pattern
("/api/series/{id}") rather than the raw path so ids never become label
values.
*/
package middleware
