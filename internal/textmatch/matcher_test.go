// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package textmatch

import (
	"reflect"
	"testing"
)

func TestMatcherContains(t *testing.T) {
	m := New("adult", "18+", "xxx", "sensual")

	tests := []struct {
		text string
		want bool
	}{
		{"A family drama", false},
		{"ADULT content ahead", true},
		{"Rated 18+ only", true},
		{"sensuality", true},
		{"x x x", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := m.Contains(tt.text); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMatcherOverlappingKeywords(t *testing.T) {
	m := New("prime video", "amazon prime video", "video")

	got := m.All("Amazon Prime Video")
	want := []string{"video", "amazon prime video", "prime video"}
	if len(got) != len(want) {
		t.Fatalf("All() = %v, want %d matches", got, len(want))
	}
	for _, w := range want {
		found := false
		for _, g := range got {
			if g == w {
				found = true
			}
		}
		if !found {
			t.Errorf("All() = %v, missing %q", got, w)
		}
	}
}

func TestMatcherFirst(t *testing.T) {
	m := New("netflix", "zee5")
	kw, ok := m.First("Streaming on ZEE5 and Netflix")
	if !ok || kw != "zee5" {
		t.Errorf("First() = %q, %v, want zee5", kw, ok)
	}
}

func TestMatcherEmpty(t *testing.T) {
	m := New("", "  ")
	if m.Contains("anything") {
		t.Error("empty matcher matched")
	}
	if got := m.Keywords(); len(got) != 0 {
		t.Errorf("Keywords() = %v", got)
	}
}

func TestMatcherContainsAny(t *testing.T) {
	m := New("nsfw")
	if !m.ContainsAny("clean title", "NSFW overview") {
		t.Error("ContainsAny missed second text")
	}
	if m.ContainsAny() {
		t.Error("ContainsAny with no texts matched")
	}
	if !reflect.DeepEqual(m.Keywords(), []string{"nsfw"}) {
		t.Errorf("Keywords() = %v", m.Keywords())
	}
}
