// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

// Package services adapts Cinemora's long-running components to the
// suture.Service interface so they can run under the supervisor tree.
//
// Each service blocks in Serve until its context is canceled and returns
// ctx.Err() on a clean stop. Any other returned error is treated by suture
// as a crash and the service is restarted with backoff.
package services
