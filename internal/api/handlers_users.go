// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/cinemora/internal/audit"
	"github.com/tomtom215/cinemora/internal/models"
	"github.com/tomtom215/cinemora/internal/validation"
)

const (
	msgProfileForeign = "You can only update your own profile"
	msgProfileEmpty   = "Name or email required"
	msgEmailInUse     = "Email already in use"
)

// UserResponse is the public view of an account after a profile update.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetUser handles GET /api/users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFound(w, r, msgUserNotFound)
		return
	}

	user, err := h.db.GetUserByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err, storeMessages{notFound: msgUserNotFound})
		return
	}
	stats, err := h.db.UserStats(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err, storeMessages{})
		return
	}

	writeJSON(w, http.StatusOK, models.UserProfile{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		Stats:     stats,
	})
}

// UpdateUser handles PUT /api/users/{id}. Users may only edit themselves.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok || id != userID {
		forbidden(w, r, msgProfileForeign)
		return
	}

	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		badRequest(w, r, "Invalid JSON body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" && req.Email == "" {
		badRequest(w, r, msgProfileEmpty)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		badRequest(w, r, msgInvalidEmail)
		return
	}

	var upd models.UserUpdate
	if req.Name != "" {
		upd.Name = &req.Name
	}
	if req.Email != "" {
		upd.Email = &req.Email
	}

	user, err := h.db.UpdateUser(r.Context(), userID, upd)
	if err != nil {
		respondStoreError(w, r, err, storeMessages{
			notFound: msgUserNotFound,
			conflict: msgEmailInUse,
		})
		return
	}
	h.audit.Log(audit.NewRequestEvent(r, audit.EventTypeProfileUpdated, audit.OutcomeSuccess, "Profile updated").
		WithTarget("user", user.ID, user.Email))
	writeJSON(w, http.StatusOK, UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// MyReviews handles GET /api/user/reviews.
func (h *Handler) MyReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	page, err := h.db.ListUserReviews(r.Context(), userID, h.pagination(r))
	if err != nil {
		respondStoreError(w, r, err, storeMessages{})
		return
	}
	writeJSON(w, http.StatusOK, page)
}
