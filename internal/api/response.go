// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemora/internal/database"
	"github.com/tomtom215/cinemora/internal/logging"
)

// Error codes for API responses
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeTooManyRequests     = "TOO_MANY_REQUESTS"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeExternalServiceFail = "EXTERNAL_SERVICE_FAILED"
)

// Default messages for store errors a handler does not name itself.
const (
	msgConflict       = "A record with this information already exists"
	msgRecordNotFound = "Record not found"
	msgInternal       = "Internal server error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// MessageResponse is returned by endpoints that only confirm an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		http.Error(w, `{"message":"Internal server error","code":"INTERNAL_ERROR"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes an error body. err, when set, is logged with the
// request ids and never sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Err(err).
			Str("code", code).
			Str("method", r.Method).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Msg("API error")
	}
	writeJSON(w, status, ErrorResponse{Message: message, Code: code})
}

func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, message, nil)
}

func notFound(w http.ResponseWriter, r *http.Request, message string) {
	respondError(w, r, http.StatusNotFound, ErrCodeNotFound, message, nil)
}

func forbidden(w http.ResponseWriter, r *http.Request, message string) {
	respondError(w, r, http.StatusForbidden, ErrCodeForbidden, message, nil)
}

// storeMessages overrides the default text for store sentinel errors.
type storeMessages struct {
	notFound  string
	conflict  string
	forbidden string
}

// respondStoreError maps database sentinel errors to HTTP responses and
// treats everything else as a 500.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error, msgs storeMessages) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		notFound(w, r, firstNonEmpty(msgs.notFound, msgRecordNotFound))
	case errors.Is(err, database.ErrConflict):
		respondError(w, r, http.StatusConflict, ErrCodeConflict, firstNonEmpty(msgs.conflict, msgConflict), nil)
	case errors.Is(err, database.ErrForbidden):
		forbidden(w, r, firstNonEmpty(msgs.forbidden, "Forbidden"))
	default:
		respondError(w, r, http.StatusInternalServerError, ErrCodeDatabaseError, msgInternal, err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// sanitizeLogValue escapes control characters so request data cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
