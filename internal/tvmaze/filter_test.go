// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package tvmaze

import "testing"

func netflixShow(name string) *Show {
	return &Show{
		ID:         1,
		Name:       name,
		Type:       "Scripted",
		Language:   "English",
		Summary:    "<p>A <b>good</b> show.</p>",
		WebChannel: &Channel{Name: "Netflix"},
	}
}

func TestStripHTML(t *testing.T) {
	tests := map[string]string{
		"":                                   "",
		"<p>Hello</p>":                       "Hello",
		"<p>Two  <i>words</i></p>\n<p>x</p>": "Two words x",
		"plain text":                         "plain text",
	}
	for in, want := range tests {
		if got := StripHTML(in); got != want {
			t.Errorf("StripHTML(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsCleanShow(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Show)
		want   bool
	}{
		{"clean netflix show", func(*Show) {}, true},
		{"adult type", func(s *Show) { s.Type = "Adult" }, false},
		{"blocked word in name", func(s *Show) { s.Name = "Bold Nights" }, false},
		{"blocked word in summary", func(s *Show) { s.Summary = "<p>An <b>erotic</b> thriller</p>" }, false},
		{"blocked word in site", func(s *Show) { s.OfficialSite = "https://xxx.example.com" }, false},
		{"no platform", func(s *Show) { s.WebChannel = nil }, false},
		{"unlisted platform", func(s *Show) { s.WebChannel = &Channel{Name: "Hulu"} }, false},
		{"network match", func(s *Show) { s.WebChannel = nil; s.Network = &Channel{Name: "Disney+ Hotstar"} }, true},
		{"case insensitive platform", func(s *Show) { s.WebChannel = &Channel{Name: "SonyLIV"} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := netflixShow("Sacred Games")
			tt.mutate(s)
			if got := IsCleanShow(s); got != tt.want {
				t.Errorf("IsCleanShow() = %v, want %v", got, tt.want)
			}
		})
	}

	if IsCleanShow(nil) {
		t.Error("IsCleanShow(nil) = true")
	}
}

func TestIsHindi(t *testing.T) {
	tests := []struct {
		name string
		show *Show
		want bool
	}{
		{"hindi language", &Show{Language: "Hindi"}, true},
		{"indian web channel", &Show{Language: "English", WebChannel: &Channel{Country: &Country{Code: "IN"}}}, true},
		{"indian network", &Show{Network: &Channel{Country: &Country{Code: "in"}}}, true},
		{"us show", &Show{Language: "English", Network: &Channel{Country: &Country{Code: "US"}}}, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHindi(tt.show); got != tt.want {
				t.Errorf("IsHindi() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapShow(t *testing.T) {
	avg := 8.7
	s := &Show{
		ID:        42,
		Summary:   "<p>Crime in <b>Mumbai</b>.</p>",
		Genres:    []string{"Crime", "Drama"},
		Premiered: "2018-07-06",
		Weight:    97,
		Image:     &Image{Medium: "https://img/medium.jpg"},
	}
	s.Rating.Average = &avg

	got := MapShow(s)
	if got.ExternalID == nil || *got.ExternalID != "42" {
		t.Errorf("ExternalID = %v, want 42", got.ExternalID)
	}
	if got.Title != "Untitled" {
		t.Errorf("Title = %q, want Untitled", got.Title)
	}
	if got.Overview == nil || *got.Overview != "Crime in Mumbai." {
		t.Errorf("Overview = %v", got.Overview)
	}
	if got.PosterPath == nil || *got.PosterPath != "https://img/medium.jpg" {
		t.Errorf("PosterPath = %v, want medium fallback", got.PosterPath)
	}
	if got.BackdropPath != nil {
		t.Errorf("BackdropPath = %v, want nil", got.BackdropPath)
	}
	if got.ReleaseYear == nil || *got.ReleaseYear != 2018 {
		t.Errorf("ReleaseYear = %v, want 2018", got.ReleaseYear)
	}
	if got.AverageRating != 8.7 || got.ReviewsCount != 97 {
		t.Errorf("rating/count = %v/%d", got.AverageRating, got.ReviewsCount)
	}
	if len(got.Genres) != 2 {
		t.Errorf("Genres = %v", got.Genres)
	}

	bare := MapShow(&Show{ID: 7, Name: "Panchayat"})
	if bare.Genres == nil || len(bare.Genres) != 0 {
		t.Errorf("Genres = %#v, want empty slice", bare.Genres)
	}
	if bare.ReleaseYear != nil || bare.AverageRating != 0 || bare.PosterPath != nil {
		t.Errorf("unexpected defaults: %+v", bare)
	}
}
