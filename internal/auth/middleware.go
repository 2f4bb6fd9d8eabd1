// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemora/internal/logging"
)

type contextKey string

// ClaimsContextKey holds the *Claims of an authenticated request.
const ClaimsContextKey contextKey = "claims"

// Messages returned to clients on authentication failure.
const (
	MsgNoToken       = "No token provided"
	MsgInvalidFormat = "Invalid token format"
	MsgInvalidToken  = "Invalid token"
	MsgTokenExpired  = "Token expired"
)

// Middleware authenticates bearer tokens.
type Middleware struct {
	jwtManager *JWTManager
}

// NewMiddleware creates authentication middleware backed by jwtManager.
func NewMiddleware(jwtManager *JWTManager) *Middleware {
	return &Middleware{jwtManager: jwtManager}
}

// extractBearer returns the token from an Authorization header value.
func extractBearer(authHeader string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// Authenticate rejects requests without a valid bearer token and stores
// the token claims in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeUnauthorized(w, MsgNoToken)
			return
		}

		token, ok := extractBearer(authHeader)
		if !ok {
			writeUnauthorized(w, MsgInvalidFormat)
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
			if errors.Is(err, ErrTokenExpired) {
				writeUnauthorized(w, MsgTokenExpired)
				return
			}
			writeUnauthorized(w, MsgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

// OptionalAuthenticate attaches claims when a valid bearer token is
// present and otherwise passes the request through unchanged.
func (m *Middleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := extractBearer(r.Header.Get("Authorization")); ok {
			if claims, err := m.jwtManager.ValidateToken(token); err == nil {
				r = r.WithContext(ContextWithClaims(r.Context(), claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// ContextWithClaims returns ctx carrying claims.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext returns the claims of an authenticated request.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	body, err := json.Marshal(map[string]string{"message": message, "code": "UNAUTHORIZED"})
	if err != nil {
		return
	}
	_, _ = w.Write(body)
}
