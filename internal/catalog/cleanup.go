// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package catalog

import (
	"context"
	"errors"
	"strings"
)

// AdultKeywords mark series removed by CleanupAdultContent.
var AdultKeywords = []string{"18+", "adult", "explicit", "xxx", "porn", "nsfw", "mature", "sexual"}

// CleanupAdultContent soft-deletes live series whose title or overview
// contains an adult keyword and returns the number removed.
func (r *Runner) CleanupAdultContent(ctx context.Context) (int, error) {
	removed := 0
	err := r.withLock(ctx, "cleanup_adult", func() (int, error) {
		var err error
		removed, err = r.store.SoftDeleteMatching(ctx, AdultKeywords...)
		return removed, err
	})
	return removed, err
}

// CleanupGenre removes a genre from every series that lists it and returns
// the number of series changed. Series themselves are kept.
func (r *Runner) CleanupGenre(ctx context.Context, genre string) (int, error) {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return 0, errors.New("cleanup genre: genre name is required")
	}
	updated := 0
	err := r.withLock(ctx, "cleanup_genre", func() (int, error) {
		var err error
		updated, err = r.store.RemoveGenre(ctx, genre)
		return updated, err
	})
	return updated, err
}
