// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package tvmaze

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tomtom215/cinemora/internal/models"
	"github.com/tomtom215/cinemora/internal/textmatch"
)

// BlockedKeywords reject a show when found in its name, summary or
// official site.
var BlockedKeywords = []string{"adult", "18+", "erotic", "xxx", "bold", "sensual", "sexual"}

// AllowedPlatforms lists the streaming services a show must be carried by.
var AllowedPlatforms = []string{
	"netflix",
	"amazon prime video",
	"prime video",
	"primevideo",
	"disney+ hotstar",
	"hotstar",
	"disney+",
	"sonyliv",
	"sony liv",
	"zee5",
	"mx player",
	"jio cinema",
	"jiocinema",
}

var (
	blockedMatcher  = textmatch.New(BlockedKeywords...)
	platformMatcher = textmatch.New(AllowedPlatforms...)

	htmlTag    = regexp.MustCompile(`<[^>]*>`)
	whitespace = regexp.MustCompile(`\s+`)
)

// StripHTML removes markup from a TVMaze summary and collapses whitespace.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = htmlTag.ReplaceAllString(s, "")
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// IsCleanShow reports whether a show may enter the catalog: not typed as
// adult, free of blocked keywords and carried by an allowed platform.
func IsCleanShow(s *Show) bool {
	if s == nil {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(s.Type), "adult") {
		return false
	}
	if blockedMatcher.ContainsAny(s.Name, StripHTML(s.Summary), s.OfficialSite) {
		return false
	}
	return IsAllowedPlatform(s)
}

// IsAllowedPlatform matches the web channel and network names against
// AllowedPlatforms.
func IsAllowedPlatform(s *Show) bool {
	combined := strings.TrimSpace(s.WebChannel.name() + " " + s.Network.name())
	if combined == "" {
		return false
	}
	return platformMatcher.Contains(combined)
}

// IsHindi reports whether a show is in Hindi or produced in India.
func IsHindi(s *Show) bool {
	if s == nil {
		return false
	}
	if strings.EqualFold(s.Language, "hindi") {
		return true
	}
	code := s.WebChannel.countryCode()
	if code == "" {
		code = s.Network.countryCode()
	}
	return strings.EqualFold(code, "IN")
}

// MapShow converts a TVMaze show into a catalog series.
func MapShow(s *Show) models.Series {
	title := s.Name
	if title == "" {
		title = "Untitled"
	}
	externalID := strconv.FormatInt(s.ID, 10)
	series := models.Series{
		ExternalID:   &externalID,
		Title:        title,
		Genres:       []string{},
		ReviewsCount: s.Weight,
	}
	if overview := StripHTML(s.Summary); overview != "" {
		series.Overview = &overview
	}
	if s.Image != nil {
		poster := s.Image.Original
		if poster == "" {
			poster = s.Image.Medium
		}
		if poster != "" {
			series.PosterPath = &poster
		}
	}
	if len(s.Genres) > 0 {
		series.Genres = append(series.Genres, s.Genres...)
	}
	if len(s.Premiered) >= 4 {
		if year, err := strconv.Atoi(s.Premiered[:4]); err == nil {
			series.ReleaseYear = &year
		}
	}
	if s.Rating.Average != nil {
		series.AverageRating = *s.Rating.Average
	}
	return series
}

// CleanSeries filters shows with IsCleanShow and maps the survivors.
func CleanSeries(shows []*Show) []models.Series {
	out := make([]models.Series, 0, len(shows))
	for _, s := range shows {
		if IsCleanShow(s) {
			out = append(out, MapShow(s))
		}
	}
	return out
}
