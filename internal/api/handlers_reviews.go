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
	"unicode/utf8"

	"github.com/tomtom215/cinemora/internal/logging"
	"github.com/tomtom215/cinemora/internal/metrics"
	"github.com/tomtom215/cinemora/internal/models"
	ws "github.com/tomtom215/cinemora/internal/websocket"
)

const (
	minReviewRunes = 10
	minRating      = 1
	maxRating      = 10
)

const (
	msgReviewRequired      = "Series ID, rating, and text are required"
	msgRatingInvalid       = "Rating must be an integer between 1 and 10"
	msgReviewTooShort      = "Review text must be at least 10 characters"
	msgReviewNotFound      = "Review not found"
	msgReviewUpdateForeign = "You can only update your own reviews"
	msgReviewDeleteForeign = "You can only delete your own reviews"
	msgReviewDeleted       = "Review deleted successfully"
)

// ratingValue returns the rating when it is a whole number in range.
func ratingValue(n flexNumber) (int, bool) {
	v, ok := n.Int()
	if !ok || v < minRating || v > maxRating {
		return 0, false
	}
	return int(v), true
}

// ListReviews handles GET /api/reviews.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	var seriesID *int64
	if raw := strings.TrimSpace(r.URL.Query().Get("seriesId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(w, r, "Invalid seriesId")
			return
		}
		seriesID = &id
	}

	page, err := h.db.ListReviews(r.Context(), seriesID, h.pagination(r))
	if err != nil {
		respondStoreError(w, r, err, storeMessages{})
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// CreateReview handles POST /api/reviews. A user has at most one review per
// series: posting again replaces it and answers 200 instead of 201.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req createReviewRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		badRequest(w, r, "Invalid JSON body")
		return
	}

	seriesID, idOK := req.SeriesID.Int()
	zeroRating := req.Rating.Valid && req.Rating.Value == 0
	if !idOK || seriesID == 0 || !req.Rating.Set || zeroRating || req.Text == "" {
		badRequest(w, r, msgReviewRequired)
		return
	}
	rating, ok := ratingValue(req.Rating)
	if !ok {
		badRequest(w, r, msgRatingInvalid)
		return
	}
	if utf8.RuneCountInString(req.Text) < minReviewRunes {
		badRequest(w, r, msgReviewTooShort)
		return
	}

	review, created, err := h.db.UpsertReview(r.Context(), userID, seriesID, rating, req.Text)
	if err != nil {
		respondStoreError(w, r, err, storeMessages{notFound: msgSeriesNotFound})
		return
	}

	action, status := "update", http.StatusOK
	if created {
		action, status = "create", http.StatusCreated
	}
	metrics.RecordReviewMutation(action)
	h.invalidateCache(r.Context(), "review")
	msgType := ws.MessageTypeReviewUpdated
	if created {
		msgType = ws.MessageTypeReviewCreated
	}
	h.publishReview(r.Context(), msgType, &review.Review)

	logging.Ctx(r.Context()).Debug().
		Int64("review_id", review.ID).
		Int64("series_id", seriesID).
		Str("action", action).
		Msg("Review saved")
	writeJSON(w, status, review)
}

// UpdateReview handles PUT /api/reviews/{id}.
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		notFound(w, r, msgReviewNotFound)
		return
	}

	var req updateReviewRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		badRequest(w, r, "Invalid JSON body")
		return
	}

	var upd models.ReviewUpdate
	if req.Rating.Set {
		rating, ok := ratingValue(req.Rating)
		if !ok {
			badRequest(w, r, msgRatingInvalid)
			return
		}
		upd.Rating = &rating
	}
	if req.Text != nil && *req.Text != "" {
		if utf8.RuneCountInString(*req.Text) < minReviewRunes {
			badRequest(w, r, msgReviewTooShort)
			return
		}
		upd.Text = req.Text
	}

	review, err := h.db.UpdateReview(r.Context(), id, userID, upd)
	if err != nil {
		respondStoreError(w, r, err, storeMessages{
			notFound:  msgReviewNotFound,
			forbidden: msgReviewUpdateForeign,
		})
		return
	}

	metrics.RecordReviewMutation("update")
	h.invalidateCache(r.Context(), "review")
	h.publishReview(r.Context(), ws.MessageTypeReviewUpdated, &review.Review)
	writeJSON(w, http.StatusOK, review)
}

// DeleteReview handles DELETE /api/reviews/{id}.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		notFound(w, r, msgReviewNotFound)
		return
	}

	seriesID, err := h.db.DeleteReview(r.Context(), id, userID)
	if err != nil {
		respondStoreError(w, r, err, storeMessages{
			notFound:  msgReviewNotFound,
			forbidden: msgReviewDeleteForeign,
		})
		return
	}

	metrics.RecordReviewMutation("delete")
	h.invalidateCache(r.Context(), "review")
	h.publishReview(r.Context(), ws.MessageTypeReviewDeleted, &models.Review{ID: id, SeriesID: seriesID, UserID: userID})
	writeJSON(w, http.StatusOK, MessageResponse{Message: msgReviewDeleted})
}
