// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package models

import "time"

// Review bounds.
const (
	MinRating         = 1
	MaxRating         = 10
	MinReviewTextRune = 10
)

// Review is one user's rating and text for one series. A user holds at
// most one review per series.
type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	SeriesID  int64     `json:"seriesId"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewWithUser is a review joined with its author.
type ReviewWithUser struct {
	Review
	User UserSummary `json:"user"`
}

// ReviewWithSeries is a review joined with the reviewed series.
type ReviewWithSeries struct {
	ID        int64         `json:"id"`
	Rating    int           `json:"rating"`
	Text      string        `json:"text"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Series    SeriesSummary `json:"series"`
}

// ReviewUpdate carries a partial review edit.
type ReviewUpdate struct {
	Rating *int
	Text   *string
}

// ReviewPage is the paginated envelope used by review listings.
type ReviewPage[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}
