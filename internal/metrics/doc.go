// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

// Package metrics declares the Prometheus collectors exported at /metrics.
//
// Collectors are registered on the default registry through promauto, so
// importing the package is enough to expose them. Families:
//
//   - api_*: request counts, latency, in-flight requests, rate-limit hits
//   - cache_*: hits and misses per namespace, entries and evictions per
//     backend, full invalidations
//   - review_mutations_total, catalog_mutations_total: domain writes
//   - catalog_job_*: maintenance command runs
//   - tvmaze_*: upstream latency and failures
//   - circuit_breaker_*: state of the TVMaze circuit breaker
package metrics
