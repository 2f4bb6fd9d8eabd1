// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/cinemora/internal/authz"
	"github.com/tomtom215/cinemora/internal/models"
)

func TestAdminSeries(t *testing.T) {
	env := newTestEnv(t)
	_, admin := env.user("Admin", "admin@example.com", models.RoleAdmin)
	_, user := env.user("User", "user@example.com", models.RoleUser)

	body := map[string]interface{}{
		"title":       "  Delhi Crime  ",
		"releaseYear": "2019",
		"genres":      "Crime, Drama,",
		"overview":    "Investigation drama",
	}

	t.Run("non-admin is rejected", func(t *testing.T) {
		expectError(t, env.do(http.MethodPost, "/api/admin/series", body, user), http.StatusForbidden, authz.MsgAdminRequired)
		expectStatus(t, env.do(http.MethodPost, "/api/admin/series", body, ""), http.StatusUnauthorized)
	})

	// Populate the list cache; the create below must clear it.
	expectStatus(t, env.do(http.MethodGet, "/api/series", nil, ""), http.StatusOK)

	rec := env.do(http.MethodPost, "/api/admin/series", body, admin)
	expectStatus(t, rec, http.StatusCreated)
	created := decode[models.Series](t, rec)
	if created.Title != "Delhi Crime" {
		t.Errorf("title = %q", created.Title)
	}
	if created.ReleaseYear == nil || *created.ReleaseYear != 2019 {
		t.Errorf("releaseYear = %v", created.ReleaseYear)
	}
	if len(created.Genres) != 2 || created.Genres[0] != "Crime" || created.Genres[1] != "Drama" {
		t.Errorf("genres = %v", created.Genres)
	}

	rec = env.do(http.MethodGet, "/api/series", nil, "")
	if page := decode[models.SeriesPage](t, rec); page.TotalResults != 1 {
		t.Errorf("list after create = %d results, want 1", page.TotalResults)
	}

	t.Run("out of range release year is unknown", func(t *testing.T) {
		for _, year := range []interface{}{1e12, -2019, "99999"} {
			rec := env.do(http.MethodPost, "/api/admin/series", map[string]interface{}{"title": "Scam 1992", "releaseYear": year}, admin)
			expectStatus(t, rec, http.StatusCreated)
			if got := decode[models.Series](t, rec); got.ReleaseYear != nil {
				t.Errorf("releaseYear %v stored as %d, want null", year, *got.ReleaseYear)
			}
		}
	})

	t.Run("blank title", func(t *testing.T) {
		expectError(t, env.do(http.MethodPost, "/api/admin/series", map[string]string{"title": "   "}, admin),
			http.StatusBadRequest, msgTitleRequired)
	})

	seriesPath := "/api/admin/series/" + itoa(created.ID)
	rec = env.do(http.MethodPut, seriesPath, map[string]interface{}{"genres": []string{"Thriller"}, "overview": nil}, admin)
	expectStatus(t, rec, http.StatusOK)
	updated := decode[models.Series](t, rec)
	if updated.Title != "Delhi Crime" || len(updated.Genres) != 1 || updated.Overview != nil {
		t.Errorf("updated = %+v", updated)
	}
	expectError(t, env.do(http.MethodPut, "/api/admin/series/999999", map[string]string{"title": "X"}, admin),
		http.StatusNotFound, msgSeriesNotFound)

	rec = env.do(http.MethodDelete, seriesPath, nil, admin)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[OKResponse](t, rec); !got.OK {
		t.Error("delete did not answer ok")
	}
	expectError(t, env.do(http.MethodGet, "/api/series/"+itoa(created.ID), nil, ""), http.StatusNotFound, msgSeriesNotFound)
	expectError(t, env.do(http.MethodDelete, seriesPath, nil, admin), http.StatusNotFound, msgSeriesNotFound)
}
