// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package models

import (
	"math"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name              string
		page, limit       int
		wantPage, wantLim int
		wantOffset        int
	}{
		{"defaults", 0, 0, 1, 10, 0},
		{"negative page", -3, 5, 1, 5, 0},
		{"third page", 3, 20, 3, 20, 40},
		{"clamped limit", 2, 1000, 2, 100, 100},
		{"huge page", math.MaxInt, 10, math.MaxInt / 10, 10, (math.MaxInt/10 - 1) * 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, 10, 100)
			if p.Page != tt.wantPage || p.Limit != tt.wantLim {
				t.Errorf("NewPagination(%d, %d) = %+v, want page %d limit %d", tt.page, tt.limit, p, tt.wantPage, tt.wantLim)
			}
			if got := p.Offset(); got != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", got, tt.wantOffset)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	p := Pagination{Page: 1, Limit: 10}
	tests := map[int]int{0: 0, 1: 1, 10: 1, 11: 2, 95: 10}
	for total, want := range tests {
		if got := p.TotalPages(total); got != want {
			t.Errorf("TotalPages(%d) = %d, want %d", total, got, want)
		}
	}
}

func TestSeriesQueryNormalize(t *testing.T) {
	q := SeriesQuery{Q: "  mirzapur ", Genre: "all", Sort: "bogus", Filter: "weird"}
	q.Normalize()

	if q.Q != "mirzapur" {
		t.Errorf("Q = %q", q.Q)
	}
	if q.Genre != "" {
		t.Errorf("Genre = %q, want empty for All", q.Genre)
	}
	if q.Sort != SortRating {
		t.Errorf("Sort = %q, want %q", q.Sort, SortRating)
	}
	if q.Filter != "" {
		t.Errorf("Filter = %q, want empty", q.Filter)
	}
}

func TestUserPasswordNeverSerialized(t *testing.T) {
	u := User{ID: 1, Name: "Asha", Email: "asha@example.com", PasswordHash: "$2a$10$secret", Role: RoleUser}
	data, err := json.Marshal(u)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "secret") || strings.Contains(string(data), "password") {
		t.Errorf("serialized user leaks password: %s", data)
	}
	if u.IsAdmin() {
		t.Error("IsAdmin() = true for a plain user")
	}
}

func TestIsValidRole(t *testing.T) {
	if !IsValidRole(RoleAdmin) || !IsValidRole(RoleUser) {
		t.Error("known roles rejected")
	}
	if IsValidRole("superuser") {
		t.Error("unknown role accepted")
	}
}
