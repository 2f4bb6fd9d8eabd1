// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/tomtom215/cinemora/internal/audit"
	"github.com/tomtom215/cinemora/internal/logging"
	"github.com/tomtom215/cinemora/internal/metrics"
	"github.com/tomtom215/cinemora/internal/models"
	ws "github.com/tomtom215/cinemora/internal/websocket"
)

const msgTitleRequired = "Title is required"

// Release years outside this range are stored as unknown.
const (
	minReleaseYear = 1
	maxReleaseYear = 9999
)

// OKResponse acknowledges admin deletes.
type OKResponse struct {
	OK bool `json:"ok"`
}

// toSeriesInput converts an admin payload. Absent fields stay nil; an
// explicit null clears text columns.
func (req *seriesRequest) toSeriesInput() models.SeriesInput {
	var in models.SeriesInput
	text := func(o optionalString) *string {
		if !o.Set {
			return nil
		}
		if o.Value == nil {
			empty := ""
			return &empty
		}
		return o.Value
	}
	in.Title = text(req.Title)
	in.Overview = text(req.Overview)
	in.PosterPath = text(req.PosterPath)
	in.BackdropPath = text(req.BackdropPath)
	in.ExternalID = text(req.ExternalID)

	if req.ReleaseYear.Set {
		year := 0
		if req.ReleaseYear.Valid {
			if v := math.Trunc(req.ReleaseYear.Value); v >= minReleaseYear && v <= maxReleaseYear {
				year = int(v)
			}
		}
		in.ReleaseYear = &year
	}
	if req.Genres.Set {
		in.Genres = req.Genres.Values
		if in.Genres == nil {
			in.Genres = []string{}
		}
	}
	return in
}

// AdminCreateSeries handles POST /api/admin/series.
func (h *Handler) AdminCreateSeries(w http.ResponseWriter, r *http.Request) {
	var req seriesRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		badRequest(w, r, "Invalid JSON body")
		return
	}
	in := req.toSeriesInput()
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		badRequest(w, r, msgTitleRequired)
		return
	}

	series, err := h.db.CreateSeries(r.Context(), in)
	if err != nil {
		respondStoreError(w, r, err, storeMessages{})
		return
	}

	metrics.RecordCatalogMutation("create")
	h.invalidateCache(r.Context(), "admin")
	h.audit.Log(audit.NewRequestEvent(r, audit.EventTypeSeriesCreated, audit.OutcomeSuccess, "Series created").
		WithTarget("series", series.ID, series.Title))
	h.wsHub.Broadcast(ws.MessageTypeSeriesCreated, ws.SeriesEvent{SeriesID: series.ID, Title: series.Title})
	logging.Ctx(r.Context()).Info().Int64("series_id", series.ID).Str("title", series.Title).Msg("Series created")
	writeJSON(w, http.StatusCreated, series)
}

// AdminUpdateSeries handles PUT /api/admin/series/{id}.
func (h *Handler) AdminUpdateSeries(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFound(w, r, msgSeriesNotFound)
		return
	}

	var req seriesRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		badRequest(w, r, "Invalid JSON body")
		return
	}
	in := req.toSeriesInput()
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		badRequest(w, r, msgTitleRequired)
		return
	}

	series, err := h.db.UpdateSeries(r.Context(), id, in)
	if err != nil {
		respondStoreError(w, r, err, storeMessages{notFound: msgSeriesNotFound})
		return
	}

	metrics.RecordCatalogMutation("update")
	h.invalidateCache(r.Context(), "admin")
	h.audit.Log(audit.NewRequestEvent(r, audit.EventTypeSeriesUpdated, audit.OutcomeSuccess, "Series updated").
		WithTarget("series", series.ID, series.Title))
	h.wsHub.Broadcast(ws.MessageTypeSeriesUpdated, ws.SeriesEvent{SeriesID: series.ID, Title: series.Title})
	writeJSON(w, http.StatusOK, series)
}

// AdminDeleteSeries handles DELETE /api/admin/series/{id}. The row is
// soft-deleted and its reviews and favorites are kept.
func (h *Handler) AdminDeleteSeries(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFound(w, r, msgSeriesNotFound)
		return
	}

	if err := h.db.SoftDeleteSeries(r.Context(), id); err != nil {
		respondStoreError(w, r, err, storeMessages{notFound: msgSeriesNotFound})
		return
	}

	metrics.RecordCatalogMutation("delete")
	h.invalidateCache(r.Context(), "admin")
	h.audit.Log(audit.NewRequestEvent(r, audit.EventTypeSeriesDeleted, audit.OutcomeSuccess, "Series deleted").
		WithTarget("series", id, ""))
	h.wsHub.Broadcast(ws.MessageTypeSeriesDeleted, ws.SeriesEvent{SeriesID: id})
	logging.Ctx(r.Context()).Info().Int64("series_id", id).Msg("Series deleted")
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}
