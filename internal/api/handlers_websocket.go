// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/cinemora/internal/logging"
	"github.com/tomtom215/cinemora/internal/models"
	ws "github.com/tomtom215/cinemora/internal/websocket"
)

func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts only origins allowed by the CORS
// configuration. Browsers always send Origin on a websocket handshake, so a
// missing header is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Ctx(r.Context()).Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Ctx(r.Context()).Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// WebSocket handles GET /api/ws, the read-only activity feed.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Live feed is not available", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	client.Start()
	logging.Ctx(r.Context()).Debug().Uint64("client_id", client.ID()).Msg("WebSocket client connected")
}

// publishReview broadcasts a review write with the series aggregates as
// they stand after the write.
func (h *Handler) publishReview(ctx context.Context, messageType string, review *models.Review) {
	if h.wsHub == nil {
		return
	}

	event := ws.ReviewEvent{
		ReviewID: review.ID,
		SeriesID: review.SeriesID,
		UserID:   review.UserID,
		Rating:   review.Rating,
	}
	series, err := h.db.GetSeries(ctx, review.SeriesID)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("series_id", review.SeriesID).Msg("Failed to load series aggregates for feed")
	} else {
		event.AverageRating = series.AverageRating
		event.ReviewsCount = series.ReviewsCount
	}
	h.wsHub.Broadcast(messageType, event)
}
