// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinemora/internal/config"
	"github.com/tomtom215/cinemora/internal/database"
)

func newMigrateCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and show the history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Opening the store applies pending migrations.
			return cc.withStore(func(cfg *config.Config, db *database.DB) error {
				version, err := db.CurrentSchemaVersion(cmd.Context())
				if err != nil {
					return err
				}
				history, err := db.MigrationHistory(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Schema version: %d\n", version)
				if len(history) == 0 {
					return nil
				}
				rows := make([][]string, 0, len(history))
				for _, m := range history {
					rows = append(rows, []string{
						strconv.Itoa(m.Version),
						m.Name,
						m.AppliedAt.Local().Format("2006-01-02 15:04:05"),
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Version", "Name", "Applied"}, rows, []columnAlignment{alignRight}))
				return nil
			})
		},
	}
}
