// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package websocket

// Message types.
const (
	MessageTypePing = "ping"
	MessageTypePong = "pong"

	MessageTypeReviewCreated = "review_created"
	MessageTypeReviewUpdated = "review_updated"
	MessageTypeReviewDeleted = "review_deleted"

	MessageTypeSeriesCreated = "series_created"
	MessageTypeSeriesUpdated = "series_updated"
	MessageTypeSeriesDeleted = "series_deleted"

	MessageTypeCatalogChanged = "catalog_changed"
)

// Message is one frame on the feed.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ReviewEvent reports a review write together with the series aggregates
// after the write.
type ReviewEvent struct {
	ReviewID      int64   `json:"reviewId"`
	SeriesID      int64   `json:"seriesId"`
	UserID        int64   `json:"userId"`
	Rating        int     `json:"rating,omitempty"`
	AverageRating float64 `json:"averageRating"`
	ReviewsCount  int     `json:"reviewsCount"`
}

// SeriesEvent reports an admin catalog write.
type SeriesEvent struct {
	SeriesID int64  `json:"seriesId"`
	Title    string `json:"title,omitempty"`
}
