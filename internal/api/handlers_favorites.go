// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"errors"
	"net/http"
)

const (
	msgFavoriteSeriesRequired = "Series ID is required"
	msgFavoriteExists         = "Series already in favorites"
	msgFavoriteNotFound       = "Favorite not found"
	msgFavoriteForeign        = "You can only remove your own favorites"
	msgFavoriteRemoved        = "Favorite removed successfully"
)

// AddFavorite handles POST /api/favorites.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req favoriteRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		badRequest(w, r, "Invalid JSON body")
		return
	}
	seriesID, ok := req.SeriesID.Int()
	if !ok || seriesID <= 0 {
		badRequest(w, r, msgFavoriteSeriesRequired)
		return
	}

	fav, err := h.db.AddFavorite(r.Context(), userID, seriesID)
	if err != nil {
		respondStoreError(w, r, err, storeMessages{
			notFound: msgSeriesNotFound,
			conflict: msgFavoriteExists,
		})
		return
	}
	writeJSON(w, http.StatusCreated, fav)
}

// RemoveFavorite handles DELETE /api/favorites/{id}.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		notFound(w, r, msgFavoriteNotFound)
		return
	}

	if err := h.db.RemoveFavorite(r.Context(), id, userID); err != nil {
		respondStoreError(w, r, err, storeMessages{
			notFound:  msgFavoriteNotFound,
			forbidden: msgFavoriteForeign,
		})
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: msgFavoriteRemoved})
}

// MyFavorites handles GET /api/user/favorites.
func (h *Handler) MyFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	page, err := h.db.ListFavorites(r.Context(), userID, h.pagination(r))
	if err != nil {
		respondStoreError(w, r, err, storeMessages{})
		return
	}
	writeJSON(w, http.StatusOK, page)
}
