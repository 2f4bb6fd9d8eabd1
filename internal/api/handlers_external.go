// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinemora/internal/models"
	"github.com/tomtom215/cinemora/internal/tvmaze"
)

const (
	msgQueryRequired       = "Query parameter is required"
	msgExternalUnavailable = "External catalog is not configured"
	msgExternalFailed      = "Failed to fetch from TVMaze"
	msgExternalNotFound    = "Series not found on TVMaze"
)

// ExternalSearchResponse wraps TVMaze search results.
type ExternalSearchResponse struct {
	Results      []models.Series `json:"results"`
	TotalResults int             `json:"totalResults"`
}

func (h *Handler) externalReady(w http.ResponseWriter, r *http.Request) bool {
	if h.tvmaze == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, msgExternalUnavailable, nil)
		return false
	}
	return true
}

// ExternalSearch handles GET /api/external/series?query=.
func (h *Handler) ExternalSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		badRequest(w, r, msgQueryRequired)
		return
	}
	if !h.externalReady(w, r) {
		return
	}

	results, err := h.tvmaze.SearchShows(r.Context(), query)
	if err != nil {
		respondError(w, r, http.StatusBadGateway, ErrCodeExternalServiceFail, msgExternalFailed, err)
		return
	}
	writeJSON(w, http.StatusOK, ExternalSearchResponse{Results: results, TotalResults: len(results)})
}

// ExternalGet handles GET /api/external/series/{externalId}. Shows that do
// not pass the content filter are reported as missing.
func (h *Handler) ExternalGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "externalId"), 10, 64)
	if err != nil || id <= 0 {
		notFound(w, r, msgExternalNotFound)
		return
	}
	if !h.externalReady(w, r) {
		return
	}

	series, err := h.tvmaze.GetShow(r.Context(), id)
	switch {
	case errors.Is(err, tvmaze.ErrNotFound), err == nil && series == nil:
		notFound(w, r, msgExternalNotFound)
	case err != nil:
		respondError(w, r, http.StatusBadGateway, ErrCodeExternalServiceFail, msgExternalFailed, err)
	default:
		writeJSON(w, http.StatusOK, series)
	}
}
