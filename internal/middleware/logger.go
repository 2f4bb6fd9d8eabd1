// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinemora/internal/logging"
)

// SlowRequestThreshold marks requests logged at warn level.
const SlowRequestThreshold = time.Second

// RequestLogger writes one structured line per completed request. It must
// run after RequestID so the line carries the request id.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := newStatusWriter(w)

		next.ServeHTTP(sw, r)

		duration := time.Since(start)
		logger := logging.Ctx(r.Context())
		event := logger.Info()
		switch {
		case sw.status >= http.StatusInternalServerError:
			event = logger.Error()
		case duration >= SlowRequestThreshold:
			event = logger.Warn().Bool("slow", true)
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Int("bytes", sw.bytes).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP request")
	})
}
