// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinemora/internal/cache"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ReadyResponse reports dependency state for readiness probes.
type ReadyResponse struct {
	Status            string      `json:"status"`
	DatabaseConnected bool        `json:"databaseConnected"`
	SchemaVersion     int         `json:"schemaVersion"`
	Cache             cache.Stats `json:"cache"`
	TVMazeBreaker     string      `json:"tvmazeBreaker,omitempty"`
	Uptime            float64     `json:"uptime"`
}

// Health handles GET /health. It answers as long as the process serves
// requests.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Message: "Server is running"})
}

// HealthReady handles GET /health/ready. Returns 503 until the database
// answers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	resp := ReadyResponse{
		Status:            "ready",
		DatabaseConnected: h.db != nil && h.db.Ping(r.Context()) == nil,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if resp.DatabaseConnected {
		if v, err := h.db.CurrentSchemaVersion(r.Context()); err == nil {
			resp.SchemaVersion = v
		}
	}
	if h.cache != nil {
		resp.Cache = h.cache.Stats()
	}
	if h.tvmaze != nil {
		resp.TVMazeBreaker = h.tvmaze.BreakerState()
	}

	status := http.StatusOK
	if !resp.DatabaseConnected {
		resp.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
