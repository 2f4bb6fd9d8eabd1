// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package models

import (
	"strings"
	"time"
)

// Series is a catalog entry. AverageRating and ReviewsCount are
// denormalized from the reviews table and are only written by the store
// while it holds the transaction that changed a review.
type Series struct {
	ID            int64      `json:"id"`
	ExternalID    *string    `json:"externalId"`
	Title         string     `json:"title"`
	Overview      *string    `json:"overview"`
	PosterPath    *string    `json:"posterPath"`
	BackdropPath  *string    `json:"backdropPath"`
	Genres        []string   `json:"genres"`
	ReleaseYear   *int       `json:"releaseYear"`
	AverageRating float64    `json:"averageRating"`
	ReviewsCount  int        `json:"reviewsCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty"`
}

// IsDeleted reports whether the series has been soft-deleted.
func (s *Series) IsDeleted() bool {
	return s.DeletedAt != nil
}

// SeriesSummary is the compact series block embedded in favorites and
// user review listings.
type SeriesSummary struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	PosterPath    *string  `json:"posterPath"`
	AverageRating float64  `json:"averageRating"`
	ReviewsCount  *int     `json:"reviewsCount,omitempty"`
	BackdropPath  *string  `json:"backdropPath,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	ReleaseYear   *int     `json:"releaseYear,omitempty"`
	Overview      *string  `json:"overview,omitempty"`
}

// SeriesInput carries the fields of an admin create or update. For updates
// a nil field means "leave unchanged"; Genres uses a nil slice for that.
type SeriesInput struct {
	ExternalID    *string
	Title         *string
	Overview      *string
	PosterPath    *string
	BackdropPath  *string
	Genres        []string
	ReleaseYear   *int
	AverageRating *float64
	ReviewsCount  *int
}

// Series list ordering.
const (
	SortRating = "rating"
	SortLatest = "latest"
	SortTitle  = "title"

	FilterTrending = "trending"
	FilterTopRated = "top-rated"

	// GenreAll disables genre filtering.
	GenreAll = "All"
)

// SeriesQuery describes a catalog listing request.
type SeriesQuery struct {
	Q      string
	Genre  string
	Sort   string
	Filter string
	Pagination
}

// Normalize trims inputs and replaces unknown sort values with the default.
func (q *SeriesQuery) Normalize() {
	q.Q = strings.TrimSpace(q.Q)
	q.Genre = strings.TrimSpace(q.Genre)
	if strings.EqualFold(q.Genre, GenreAll) {
		q.Genre = ""
	}
	switch q.Sort {
	case SortRating, SortLatest, SortTitle:
	default:
		q.Sort = SortRating
	}
	switch q.Filter {
	case FilterTrending, FilterTopRated:
	default:
		q.Filter = ""
	}
}

// SeriesPage is the response of GET /api/series.
type SeriesPage struct {
	Results      []Series `json:"results"`
	Page         int      `json:"page"`
	TotalPages   int      `json:"totalPages"`
	TotalResults int      `json:"totalResults"`
}

// SeriesReviews is the review block nested in a series detail response.
type SeriesReviews struct {
	Items      []ReviewWithUser `json:"items"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

// SeriesDetail is a series together with a page of its reviews.
type SeriesDetail struct {
	Series
	Reviews SeriesReviews `json:"reviews"`
}
