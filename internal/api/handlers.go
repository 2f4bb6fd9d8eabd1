// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tomtom215/cinemora/internal/audit"
	"github.com/tomtom215/cinemora/internal/auth"
	"github.com/tomtom215/cinemora/internal/cache"
	"github.com/tomtom215/cinemora/internal/config"
	"github.com/tomtom215/cinemora/internal/database"
	"github.com/tomtom215/cinemora/internal/logging"
	"github.com/tomtom215/cinemora/internal/metrics"
	"github.com/tomtom215/cinemora/internal/tvmaze"
	ws "github.com/tomtom215/cinemora/internal/websocket"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files by resource:
//   - handlers_auth.go: signup, login, current user
//   - handlers_series.go: public catalog reads (cached)
//   - handlers_reviews.go: review listing and mutations
//   - handlers_favorites.go: favorites list
//   - handlers_users.go: profiles and "my reviews"
//   - handlers_admin.go: catalog curation (admin only)
//   - handlers_external.go: TVMaze lookups
//   - handlers_audit.go: audit trail (admin only)
//   - handlers_websocket.go: live activity feed
//   - handlers_health.go: liveness and readiness
type Handler struct {
	db         *database.DB
	cache      cache.Cacher
	jwtManager *auth.JWTManager
	tvmaze     *tvmaze.Client
	wsHub      *ws.Hub
	audit      *audit.Logger
	config     *config.Config
	startTime  time.Time

	// cacheGen is bumped before every invalidation so a read that loaded
	// across a write does not store its result.
	cacheGen atomic.Uint64
}

// NewHandler creates a new API handler. tvm may be nil, in which case the
// external endpoints answer 503; wsHub may be nil, which disables the live
// feed.
func NewHandler(db *database.DB, c cache.Cacher, jwtManager *auth.JWTManager, tvm *tvmaze.Client, cfg *config.Config, wsHub *ws.Hub) *Handler {
	return &Handler{
		db:         db,
		cache:      c,
		jwtManager: jwtManager,
		tvmaze:     tvm,
		wsHub:      wsHub,
		config:     cfg,
		startTime:  time.Now(),
	}
}

// SetAuditLogger enables the audit trail. Without it events are discarded
// and GET /api/admin/audit answers 503.
func (h *Handler) SetAuditLogger(l *audit.Logger) {
	h.audit = l
}

// currentUserID returns the authenticated user id. Routes using it sit
// behind auth.Middleware.Authenticate, so a missing claim is a wiring bug
// and answered with 401.
func currentUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, auth.MsgNoToken, nil)
		return 0, false
	}
	return claims.UserID, true
}

// cached serves namespace/params from the cache or computes, stores and
// returns it. A result loaded while an invalidation ran is returned but not
// kept. The guard is per process: with a shared Redis cache another
// instance's write can still race a store here until the TTL expires.
func cached[T any](ctx context.Context, h *Handler, namespace string, params map[string]interface{}, load func() (T, error)) (T, error) {
	key := cache.GenerateKey(namespace, params)
	if v, ok := cache.GetJSON[T](ctx, h.cache, key); ok {
		metrics.RecordCacheLookup(namespace, true)
		return v, nil
	}
	metrics.RecordCacheLookup(namespace, false)

	gen := h.cacheGen.Load()
	v, err := load()
	if err != nil {
		return v, err
	}
	if h.cacheGen.Load() != gen {
		return v, nil
	}
	if err := cache.SetJSON(ctx, h.cache, key, v, 0); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("namespace", namespace).Msg("Failed to cache response")
		return v, nil
	}
	// An invalidation that started between the check and the store may
	// have cleared before our write landed.
	if h.cacheGen.Load() != gen {
		_ = h.cache.Delete(ctx, key)
	}
	return v, nil
}

// invalidateCache drops every cached response after a write that changes
// what catalog reads return.
func (h *Handler) invalidateCache(ctx context.Context, reason string) {
	h.cacheGen.Add(1)
	if err := h.cache.Clear(ctx); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("reason", reason).Msg("Failed to clear cache")
		return
	}
	metrics.RecordCacheInvalidation(reason)
}
