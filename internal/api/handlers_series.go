// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"net/http"

	"github.com/tomtom215/cinemora/internal/models"
)

const msgSeriesNotFound = "Series not found"

// Cache namespaces for catalog reads.
const (
	cacheSeriesList   = "series"
	cacheSeriesDetail = "series_detail"
	cacheGenres       = "genres"
)

// SeriesDetailResponse wraps GET /api/series/{id}.
type SeriesDetailResponse struct {
	Series models.SeriesDetail `json:"series"`
}

// GenresResponse is returned by GET /api/series/genres.
type GenresResponse struct {
	Genres []string `json:"genres"`
}

// ListSeries handles GET /api/series.
func (h *Handler) ListSeries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := models.SeriesQuery{
		Q:          query.Get("q"),
		Genre:      query.Get("genre"),
		Sort:       query.Get("sort"),
		Filter:     query.Get("filter"),
		Pagination: h.pagination(r),
	}
	q.Normalize()

	params := map[string]interface{}{
		"q":      q.Q,
		"genre":  q.Genre,
		"sort":   q.Sort,
		"filter": q.Filter,
		"page":   q.Page,
		"limit":  q.Limit,
	}
	page, err := cached(r.Context(), h, cacheSeriesList, params, func() (*models.SeriesPage, error) {
		return h.db.ListSeries(r.Context(), q)
	})
	if err != nil {
		respondStoreError(w, r, err, storeMessages{})
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetSeries handles GET /api/series/{id}. page and limit select the page
// of reviews embedded in the response.
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFound(w, r, msgSeriesNotFound)
		return
	}
	p := h.pagination(r)

	params := map[string]interface{}{"id": id, "page": p.Page, "limit": p.Limit}
	detail, err := cached(r.Context(), h, cacheSeriesDetail, params, func() (*SeriesDetailResponse, error) {
		series, err := h.db.GetSeries(r.Context(), id)
		if err != nil {
			return nil, err
		}
		reviews, err := h.db.ListSeriesReviews(r.Context(), id, p)
		if err != nil {
			return nil, err
		}
		return &SeriesDetailResponse{Series: models.SeriesDetail{
			Series: *series,
			Reviews: models.SeriesReviews{
				Items:      reviews.Items,
				Page:       reviews.Page,
				TotalPages: reviews.TotalPages,
			},
		}}, nil
	})
	if err != nil {
		respondStoreError(w, r, err, storeMessages{notFound: msgSeriesNotFound})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Genres handles GET /api/series/genres.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	resp, err := cached(r.Context(), h, cacheGenres, map[string]interface{}{}, func() (GenresResponse, error) {
		genres, err := h.db.Genres(r.Context())
		return GenresResponse{Genres: genres}, err
	})
	if err != nil {
		respondStoreError(w, r, err, storeMessages{})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
