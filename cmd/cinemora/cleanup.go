// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinemora/internal/catalog"
	"github.com/tomtom215/cinemora/internal/config"
	"github.com/tomtom215/cinemora/internal/database"
)

func newCleanupCommand(cc *commandContext) *cobra.Command {
	cleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove unwanted content from the catalog",
	}

	cleanupCmd.AddCommand(&cobra.Command{
		Use:   "adult",
		Short: "Soft-delete series whose title or overview matches an adult keyword",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cc.runCleanup(cmd, func(n int) string {
				return fmt.Sprintf("Removed %d series", n)
			}, func(ctx context.Context, r *catalog.Runner) (int, error) {
				return r.CleanupAdultContent(ctx)
			})
		},
	})

	cleanupCmd.AddCommand(&cobra.Command{
		Use:   "genre <name>",
		Short: "Remove a genre from every series that lists it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cc.cleanupGenre(cmd, args[0])
		},
	})

	cleanupCmd.AddCommand(&cobra.Command{
		Use:   "drama",
		Short: "Shorthand for 'cleanup genre Drama'",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cc.cleanupGenre(cmd, "Drama")
		},
	})

	return cleanupCmd
}

func (c *commandContext) cleanupGenre(cmd *cobra.Command, genre string) error {
	report := func(n int) string {
		return fmt.Sprintf("Removed genre %q from %d series", genre, n)
	}
	return c.runCleanup(cmd, report, func(ctx context.Context, r *catalog.Runner) (int, error) {
		return r.CleanupGenre(ctx, genre)
	})
}

func (c *commandContext) runCleanup(cmd *cobra.Command, report func(n int) string, job func(context.Context, *catalog.Runner) (int, error)) error {
	return c.withStore(func(cfg *config.Config, db *database.DB) error {
		n, err := job(cmd.Context(), c.runner(cfg, db, false))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), report(n))
		if n > 0 {
			c.invalidateSharedCache(cmd.Context(), cfg)
		}
		return nil
	})
}
