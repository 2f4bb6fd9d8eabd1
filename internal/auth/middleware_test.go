// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestAuthenticate(t *testing.T) {
	m := newTestManager(t, time.Hour)
	valid, _ := m.GenerateToken(5, "c@example.com", "user")

	expiredMgr := newTestManager(t, time.Minute)
	expiredMgr.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, _ := expiredMgr.GenerateToken(5, "c@example.com", "user")

	mw := NewMiddleware(m)

	var gotClaims *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := mw.Authenticate(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{"missing header", "", http.StatusUnauthorized, MsgNoToken},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, MsgInvalidFormat},
		{"bearer without token", "Bearer ", http.StatusUnauthorized, MsgInvalidFormat},
		{"invalid token", "Bearer abc.def.ghi", http.StatusUnauthorized, MsgInvalidToken},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, MsgTokenExpired},
		{"valid token", "Bearer " + valid, http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClaims = nil
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantMsg == "" {
				if gotClaims == nil || gotClaims.UserID != 5 {
					t.Errorf("claims in context = %+v", gotClaims)
				}
				return
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %q", rec.Body.String())
			}
			if body["message"] != tt.wantMsg {
				t.Errorf("message = %q, want %q", body["message"], tt.wantMsg)
			}
			if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
				t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestOptionalAuthenticate(t *testing.T) {
	m := newTestManager(t, time.Hour)
	valid, _ := m.GenerateToken(9, "d@example.com", "admin")
	mw := NewMiddleware(m)

	tests := []struct {
		name       string
		header     string
		wantClaims bool
	}{
		{"anonymous", "", false},
		{"bad token passes through", "Bearer nope", false},
		{"valid token", "Bearer " + valid, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ok bool
			h := mw.OptionalAuthenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, ok = ClaimsFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/api/series", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			if ok != tt.wantClaims {
				t.Errorf("claims attached = %v, want %v", ok, tt.wantClaims)
			}
		})
	}
}
