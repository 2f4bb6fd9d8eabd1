// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package tvmaze

// Show is the subset of a TVMaze show record the catalog uses.
type Show struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Language     string   `json:"language"`
	Genres       []string `json:"genres"`
	Premiered    string   `json:"premiered"`
	OfficialSite string   `json:"officialSite"`
	Summary      string   `json:"summary"`
	Weight       int      `json:"weight"`
	Rating       struct {
		Average *float64 `json:"average"`
	} `json:"rating"`
	Image      *Image   `json:"image"`
	Network    *Channel `json:"network"`
	WebChannel *Channel `json:"webChannel"`
}

// Image holds the poster URLs TVMaze publishes for a show.
type Image struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// Channel is a broadcast network or a streaming web channel.
type Channel struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Country *Country `json:"country"`
}

// Country identifies where a channel is based.
type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// searchResult is one element of /search/shows.
type searchResult struct {
	Score float64 `json:"score"`
	Show  *Show   `json:"show"`
}

func (c *Channel) name() string {
	if c == nil {
		return ""
	}
	return c.Name
}

func (c *Channel) countryCode() string {
	if c == nil || c.Country == nil {
		return ""
	}
	return c.Country.Code
}
