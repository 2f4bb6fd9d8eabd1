// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package authz

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemora/internal/auth"
	"github.com/tomtom215/cinemora/internal/logging"
)

// MsgAdminRequired is returned when a non-admin reaches an admin route.
const MsgAdminRequired = "Admin access required"

// Middleware enforces the policy against authenticated requests. It must
// run after auth.Middleware.Authenticate.
type Middleware struct {
	enforcer *Enforcer
}

// NewMiddleware creates a new authorization middleware.
func NewMiddleware(enforcer *Enforcer) *Middleware {
	return &Middleware{enforcer: enforcer}
}

// AuthorizeRequest authorizes (role, path, action) where action is derived
// from the HTTP method.
func (m *Middleware) AuthorizeRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", auth.MsgNoToken)
			return
		}

		allowed, err := m.enforcer.Enforce(claims.Role, r.URL.Path, methodToAction(r.Method))
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
			return
		}
		if !allowed {
			logging.Ctx(r.Context()).Warn().
				Int64("user_id", claims.UserID).
				Str("role", claims.Role).
				Str("path", r.URL.Path).
				Msg("Authorization denied")
			writeError(w, http.StatusForbidden, "FORBIDDEN", MsgAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// methodToAction maps HTTP methods to policy actions.
func methodToAction(method string) string {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return "write"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body, err := json.Marshal(map[string]string{"message": message, "code": code})
	if err != nil {
		return
	}
	_, _ = w.Write(body)
}
