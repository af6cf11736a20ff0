// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/grimoire/internal/core/search"
	"github.com/taibuivan/grimoire/pkg/pagination"
)

func newSearchCmd(cfg *settings) *cobra.Command {
	var page pagination.Params

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search every catalog collection",
		Long: `Fetch all collections from CATALOG_BASE_URL, merge them, and print the
best matches as JSON. Collections that fail to load are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: cfg.Timeout}
			defer client.CloseIdleConnections()

			aggregator := search.NewAggregator(search.Registry(cfg.CatalogBaseURL, client), search.DefaultTTL)
			results, err := search.NewService(aggregator, pagination.DefaultLimit).
				Search(cmd.Context(), strings.Join(args, " "), page)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().StringVar(&cfg.CatalogBaseURL, "catalog-url", cfg.CatalogBaseURL, "base URL of the catalog export routes")
	cmd.Flags().IntVar(&page.Limit, "limit", pagination.DefaultLimit, "maximum number of results")
	cmd.Flags().IntVar(&page.Offset, "offset", 0, "number of results to skip")
	return cmd
}
