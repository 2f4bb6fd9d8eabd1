// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(cc *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cinemora",
		Short:         "Cinemora catalog maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := cc.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&cc.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newSeedCommand(cc))
	rootCmd.AddCommand(newCleanupCommand(cc))
	rootCmd.AddCommand(newSeriesCommand(cc))
	rootCmd.AddCommand(newMigrateCommand(cc))

	return rootCmd
}
