// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/cinemora/internal/audit"
)

// AuditResponse is a page of audit events, newest first.
type AuditResponse struct {
	Events       []audit.Event `json:"events"`
	Page         int           `json:"page"`
	TotalPages   int           `json:"totalPages"`
	TotalResults int64         `json:"totalResults"`
}

// AuditEvents handles GET /api/admin/audit.
//
// Query parameters: type (comma separated), outcome, actorId, targetId,
// from and to (RFC 3339), page and limit.
func (h *Handler) AuditEvents(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Audit trail is not enabled", nil)
		return
	}

	q := r.URL.Query()
	pg := h.pagination(r)
	filter := audit.QueryFilter{
		ActorID:  strings.TrimSpace(q.Get("actorId")),
		TargetID: strings.TrimSpace(q.Get("targetId")),
		Limit:    pg.Limit,
		Offset:   pg.Offset(),
	}
	for _, t := range strings.Split(q.Get("type"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			filter.Types = append(filter.Types, audit.EventType(t))
		}
	}
	switch outcome := audit.Outcome(strings.TrimSpace(q.Get("outcome"))); outcome {
	case "":
	case audit.OutcomeSuccess, audit.OutcomeFailure:
		filter.Outcome = outcome
	default:
		badRequest(w, r, "outcome must be success or failure")
		return
	}

	var ok bool
	if filter.StartTime, ok = parseTimeParam(w, r, "from"); !ok {
		return
	}
	if filter.EndTime, ok = parseTimeParam(w, r, "to"); !ok {
		return
	}

	events, total, err := h.audit.Query(r.Context(), filter)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeDatabaseError, msgInternal, err)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}

	writeJSON(w, http.StatusOK, AuditResponse{
		Events:       events,
		Page:         pg.Page,
		TotalPages:   pg.TotalPages(int(total)),
		TotalResults: total,
	})
}

// parseTimeParam reads an optional RFC 3339 query parameter, answering 400
// when it is malformed.
func parseTimeParam(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		badRequest(w, r, "Invalid "+name+" timestamp")
		return nil, false
	}
	return &t, true
}
