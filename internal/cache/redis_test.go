// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package cache

import "testing"

func TestEscapeGlob(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "cinemora:", "cinemora:"},
		{"star", "a*b:", `a\*b:`},
		{"question mark", "v?:", `v\?:`},
		{"brackets", "[prod]:", `\[prod\]:`},
		{"backslash", `a\b:`, `a\\b:`},
		{"mixed", `x\*?[]`, `x\\\*\?\[\]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeGlob(tt.in); got != tt.want {
				t.Errorf("escapeGlob(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
