// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinemora/internal/config"
	"github.com/tomtom215/cinemora/internal/database"
	"github.com/tomtom215/cinemora/internal/models"
)

func newSeriesCommand(cc *commandContext) *cobra.Command {
	seriesCmd := &cobra.Command{
		Use:   "series",
		Short: "Inspect the catalog",
	}
	seriesCmd.AddCommand(newSeriesListCommand(cc))
	return seriesCmd
}

func newSeriesListCommand(cc *commandContext) *cobra.Command {
	var query models.SeriesQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List live series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cc.withStore(func(cfg *config.Config, db *database.DB) error {
				q := query
				q.Pagination = models.NewPagination(q.Page, q.Limit, cfg.API.DefaultPageSize, cfg.API.MaxPageSize)
				page, err := db.ListSeries(cmd.Context(), q)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(page.Results) == 0 {
					fmt.Fprintln(out, "No series found")
					return nil
				}
				fmt.Fprintln(out, renderSeriesTable(page.Results))
				fmt.Fprintf(out, "Page %d of %d (%d series)\n", page.Page, page.TotalPages, page.TotalResults)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&query.Limit, "limit", 0, "Series per page")
	cmd.Flags().IntVar(&query.Page, "page", 1, "Page number")
	cmd.Flags().StringVar(&query.Genre, "genre", "", "Only series with this genre")
	cmd.Flags().StringVar(&query.Q, "q", "", "Case-insensitive title search")
	cmd.Flags().StringVar(&query.Sort, "sort", models.SortRating, "Ordering: rating, latest or title")
	return cmd
}

func renderSeriesTable(series []models.Series) string {
	headers := []string{"ID", "Title", "Year", "Genres", "Rating", "Reviews"}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignRight, alignRight}
	rows := make([][]string, 0, len(series))
	for _, s := range series {
		year := "-"
		if s.ReleaseYear != nil {
			year = strconv.Itoa(*s.ReleaseYear)
		}
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.Title,
			year,
			strings.Join(s.Genres, ", "),
			strconv.FormatFloat(s.AverageRating, 'f', 1, 64),
			strconv.Itoa(s.ReviewsCount),
		})
	}
	return renderTable(headers, rows, aligns)
}
