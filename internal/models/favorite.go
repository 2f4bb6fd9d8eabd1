// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package models

import "time"

// Favorite marks a series on a user's list.
type Favorite struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"userId"`
	SeriesID int64     `json:"seriesId"`
	AddedAt  time.Time `json:"addedAt"`
}

// FavoriteWithSeries is a favorite joined with its series summary.
type FavoriteWithSeries struct {
	ID       int64         `json:"id"`
	SeriesID int64         `json:"seriesId"`
	AddedAt  time.Time     `json:"addedAt"`
	Series   SeriesSummary `json:"series"`
}

// FavoritePage is the response of GET /api/user/favorites.
type FavoritePage struct {
	Results    []FavoriteWithSeries `json:"results"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
	Total      int                  `json:"total"`
}
