// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinemora/internal/catalog"
	"github.com/tomtom215/cinemora/internal/config"
	"github.com/tomtom215/cinemora/internal/database"
)

func newSeedCommand(cc *commandContext) *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the catalog or the admin account",
	}

	seedCmd.AddCommand(newSeedTVMazeCommand(cc))
	seedCmd.AddCommand(newSeedAdminCommand(cc))
	seedCmd.AddCommand(newSeedDemoCommand(cc))

	return seedCmd
}

func newSeedTVMazeCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tvmaze",
		Short: "Import clean shows from the TVMaze index, Hindi titles first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cc.withStore(func(cfg *config.Config, db *database.DB) error {
				report, err := cc.runner(cfg, db, true).SeedFromTVMaze(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Pages scanned: %d\n", report.Pages)
				fmt.Fprintf(out, "Selected:      %d Hindi, %d global\n", report.Hindi, report.Global)
				fmt.Fprintf(out, "Inserted:      %d\n", report.Inserted)
				fmt.Fprintf(out, "Skipped:       %d\n", report.Skipped)
				if report.Inserted > 0 {
					cc.invalidateSharedCache(cmd.Context(), cfg)
				}
				return nil
			})
		},
	}
}

func newSeedAdminCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "admin",
		Short: "Create the admin account or reset its password",
		Long:  "Create the account named by ADMIN_EMAIL with role admin, or reset the password and role of an existing one.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cc.withStore(func(cfg *config.Config, db *database.DB) error {
				user, created, err := cc.runner(cfg, db, false).SeedAdmin(cmd.Context())
				if err != nil {
					return err
				}
				action := "updated"
				if created {
					action = "created"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Admin %s %s (id %d)\n", user.Email, action, user.ID)
				return nil
			})
		},
	}
}

func newSeedDemoCommand(cc *commandContext) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Insert placeholder series for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cc.withStore(func(cfg *config.Config, db *database.DB) error {
				inserted, err := cc.runner(cfg, db, false).SeedDemoSeries(cmd.Context(), count)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d demo series\n", inserted)
				if inserted > 0 {
					cc.invalidateSharedCache(cmd.Context(), cfg)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", catalog.DefaultDemoCount, "Number of series to insert")
	return cmd
}
