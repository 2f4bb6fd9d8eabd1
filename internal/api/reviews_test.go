// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/tomtom215/cinemora/internal/models"
)

func TestReviewLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, alice := env.user("Alice", "alice@example.com", models.RoleUser)
	_, bob := env.user("Bob", "bob@example.com", models.RoleUser)
	s := env.series("Panchayat", "Comedy")
	detailPath := fmt.Sprintf("/api/series/%d", s.ID)

	detail := func() models.SeriesDetail {
		t.Helper()
		rec := env.do(http.MethodGet, detailPath, nil, "")
		expectStatus(t, rec, http.StatusOK)
		return decode[SeriesDetailResponse](t, rec).Series
	}

	// Warm the cache so later reads prove it was invalidated.
	if d := detail(); d.ReviewsCount != 0 || len(d.Reviews.Items) != 0 {
		t.Fatalf("fresh series has reviews: %+v", d)
	}

	rec := env.do(http.MethodPost, "/api/reviews",
		map[string]interface{}{"seriesId": s.ID, "rating": 8, "text": "Warm and very funny"}, alice)
	expectStatus(t, rec, http.StatusCreated)
	aliceReview := decode[models.ReviewWithUser](t, rec)
	if aliceReview.User.Name != "Alice" {
		t.Errorf("review user = %+v", aliceReview.User)
	}

	if d := detail(); d.AverageRating != 8 || d.ReviewsCount != 1 || len(d.Reviews.Items) != 1 {
		t.Fatalf("after first review: rating=%v count=%d items=%d", d.AverageRating, d.ReviewsCount, len(d.Reviews.Items))
	}

	// Posting again replaces the review; numeric strings are accepted.
	rec = env.do(http.MethodPost, "/api/reviews",
		map[string]interface{}{"seriesId": fmt.Sprint(s.ID), "rating": "6", "text": "Second thoughts, still good"}, alice)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.ReviewWithUser](t, rec); got.ID != aliceReview.ID || got.Rating != 6 {
		t.Errorf("upsert returned %+v", got)
	}

	expectStatus(t, env.do(http.MethodPost, "/api/reviews",
		map[string]interface{}{"seriesId": s.ID, "rating": 10, "text": "Best show of the year"}, bob), http.StatusCreated)

	if d := detail(); d.AverageRating != 8 || d.ReviewsCount != 2 {
		t.Fatalf("after two reviews: rating=%v count=%d", d.AverageRating, d.ReviewsCount)
	}

	reviewPath := fmt.Sprintf("/api/reviews/%d", aliceReview.ID)
	t.Run("update guards", func(t *testing.T) {
		expectError(t, env.do(http.MethodPut, reviewPath, map[string]interface{}{"rating": 9}, bob),
			http.StatusForbidden, msgReviewUpdateForeign)
		expectError(t, env.do(http.MethodPut, reviewPath, map[string]interface{}{"rating": 11}, alice),
			http.StatusBadRequest, msgRatingInvalid)
		expectError(t, env.do(http.MethodPut, reviewPath, map[string]interface{}{"text": "short"}, alice),
			http.StatusBadRequest, msgReviewTooShort)
		expectError(t, env.do(http.MethodPut, "/api/reviews/999999", map[string]interface{}{"rating": 5}, alice),
			http.StatusNotFound, msgReviewNotFound)
	})

	rec = env.do(http.MethodPut, reviewPath, map[string]interface{}{"rating": 4}, alice)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.ReviewWithUser](t, rec); got.Rating != 4 || got.Text != "Second thoughts, still good" {
		t.Errorf("partial update = %+v", got)
	}
	if d := detail(); d.AverageRating != 7 {
		t.Errorf("average after update = %v, want 7", d.AverageRating)
	}

	rec = env.do(http.MethodGet, fmt.Sprintf("/api/reviews?seriesId=%d&limit=1", s.ID), nil, "")
	expectStatus(t, rec, http.StatusOK)
	page := decode[models.ReviewPage[models.ReviewWithUser]](t, rec)
	if page.Total != 2 || page.TotalPages != 2 || len(page.Items) != 1 {
		t.Errorf("review page = %+v", page)
	}

	expectError(t, env.do(http.MethodDelete, reviewPath, nil, bob), http.StatusForbidden, msgReviewDeleteForeign)
	rec = env.do(http.MethodDelete, reviewPath, nil, alice)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[MessageResponse](t, rec); got.Message != msgReviewDeleted {
		t.Errorf("delete message = %q", got.Message)
	}
	expectError(t, env.do(http.MethodDelete, reviewPath, nil, alice), http.StatusNotFound, msgReviewNotFound)

	if d := detail(); d.AverageRating != 10 || d.ReviewsCount != 1 {
		t.Errorf("after delete: rating=%v count=%d", d.AverageRating, d.ReviewsCount)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user("Alice", "alice@example.com", models.RoleUser)
	s := env.series("Kota Factory")

	tests := []struct {
		name    string
		body    interface{}
		status  int
		message string
	}{
		{"empty body", nil, http.StatusBadRequest, msgReviewRequired},
		{"missing series", map[string]interface{}{"rating": 5, "text": "Long enough text"}, http.StatusBadRequest, msgReviewRequired},
		{"zero rating", map[string]interface{}{"seriesId": s.ID, "rating": 0, "text": "Long enough text"}, http.StatusBadRequest, msgReviewRequired},
		{"empty text", map[string]interface{}{"seriesId": s.ID, "rating": 5, "text": ""}, http.StatusBadRequest, msgReviewRequired},
		{"rating too high", map[string]interface{}{"seriesId": s.ID, "rating": 11, "text": "Long enough text"}, http.StatusBadRequest, msgRatingInvalid},
		{"negative rating", map[string]interface{}{"seriesId": s.ID, "rating": -2, "text": "Long enough text"}, http.StatusBadRequest, msgRatingInvalid},
		{"fractional rating", map[string]interface{}{"seriesId": s.ID, "rating": 7.5, "text": "Long enough text"}, http.StatusBadRequest, msgRatingInvalid},
		{"non-numeric rating", map[string]interface{}{"seriesId": s.ID, "rating": "great", "text": "Long enough text"}, http.StatusBadRequest, msgRatingInvalid},
		{"short text", map[string]interface{}{"seriesId": s.ID, "rating": 5, "text": "Too short"}, http.StatusBadRequest, msgReviewTooShort},
		{"unknown series", map[string]interface{}{"seriesId": 999999, "rating": 5, "text": "Long enough text"}, http.StatusNotFound, msgSeriesNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, env.do(http.MethodPost, "/api/reviews", tt.body, token), tt.status, tt.message)
		})
	}

	t.Run("requires auth", func(t *testing.T) {
		expectStatus(t, env.do(http.MethodPost, "/api/reviews",
			map[string]interface{}{"seriesId": s.ID, "rating": 5, "text": "Long enough text"}, ""), http.StatusUnauthorized)
	})
}
