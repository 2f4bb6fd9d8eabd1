// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"bytes"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemora/internal/models"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is empty")

// decodeJSON reads a JSON request body into dst. An empty body is
// reported as errEmptyBody so handlers can treat it as "nothing sent".
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errEmptyBody
	}
	return json.Unmarshal(data, dst)
}

// flexNumber accepts a JSON number or a numeric string. Set reports
// whether the field was present and not null or "".
type flexNumber struct {
	Value float64
	Set   bool
	Valid bool
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, "\"") {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			return nil
		}
	}
	n.Set = true
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	n.Value, n.Valid = v, true
	return nil
}

// Int returns the value when it is a whole number.
func (n flexNumber) Int() (int64, bool) {
	if !n.Valid || n.Value != math.Trunc(n.Value) || math.Abs(n.Value) > math.MaxInt32 {
		return 0, false
	}
	return int64(n.Value), true
}

// flexGenres accepts a JSON array of strings or a comma-separated string.
// Set reports whether the field was present.
type flexGenres struct {
	Values []string
	Set    bool
}

func (g *flexGenres) UnmarshalJSON(data []byte) error {
	g.Set = true
	s := strings.TrimSpace(string(data))
	if s == "null" {
		g.Values = []string{}
		return nil
	}
	if strings.HasPrefix(s, "\"") {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		g.Values = splitGenres(str)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	g.Values = make([]string, 0, len(list))
	for _, v := range list {
		if v = strings.TrimSpace(v); v != "" {
			g.Values = append(g.Values, v)
		}
	}
	return nil
}

func splitGenres(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// optionalString distinguishes an absent field from an explicit null.
type optionalString struct {
	Value *string
	Set   bool
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if strings.TrimSpace(string(data)) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

type signupRequest struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createReviewRequest struct {
	SeriesID flexNumber `json:"seriesId"`
	Rating   flexNumber `json:"rating"`
	Text     string     `json:"text"`
}

type updateReviewRequest struct {
	Rating flexNumber `json:"rating"`
	Text   *string    `json:"text"`
}

type favoriteRequest struct {
	SeriesID flexNumber `json:"seriesId"`
}

type updateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

type seriesRequest struct {
	Title        optionalString `json:"title"`
	Overview     optionalString `json:"overview"`
	PosterPath   optionalString `json:"posterPath"`
	BackdropPath optionalString `json:"backdropPath"`
	ExternalID   optionalString `json:"externalId"`
	ReleaseYear  flexNumber     `json:"releaseYear"`
	Genres       flexGenres     `json:"genres"`
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryInt returns a query parameter as an int, or def when absent or
// malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// pagination reads page and limit and clamps them to the configured
// bounds.
func (h *Handler) pagination(r *http.Request) models.Pagination {
	return models.NewPagination(
		queryInt(r, "page", 1),
		queryInt(r, "limit", h.config.API.DefaultPageSize),
		h.config.API.DefaultPageSize,
		h.config.API.MaxPageSize,
	)
}
