// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/taibuivan/grimoire/internal/core/audit"
	"github.com/taibuivan/grimoire/internal/core/catalog"
	"github.com/taibuivan/grimoire/internal/core/entity"
	pgstore "github.com/taibuivan/grimoire/internal/platform/postgres"
	requestutil "github.com/taibuivan/grimoire/internal/platform/request"
)

func newAuditCmd(cfg *settings, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Catalog consistency checks",
	}

	var (
		lang  string
		kinds []string
	)

	mentions := &cobra.Command{
		Use:   "mentions",
		Short: "List descriptions with unresolved @mentions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is required")
			}

			selected, err := parseKindFlags(kinds)
			if err != nil {
				return err
			}

			pool, err := pgstore.NewPool(cmd.Context(), cfg.DatabaseURL, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			service := audit.NewService(catalog.NewPostgresRepository(pool), audit.NewDetector(cfg.MentionMarker), nil)
			issues, err := service.Audit(cmd.Context(), requestutil.MatchLanguage(lang), selected)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), issues)
		},
	}

	mentions.Flags().StringVar(&lang, "lang", "en", "language of the type labels")
	mentions.Flags().StringSliceVar(&kinds, "types", nil, "collections to scan (default all)")
	mentions.Flags().StringVar(&cfg.MentionMarker, "marker", cfg.MentionMarker, "attribute signature of a resolved mention")

	cmd.AddCommand(mentions)
	return cmd
}

func parseKindFlags(values []string) ([]entity.Kind, error) {
	kinds := make([]entity.Kind, 0, len(values))
	for _, value := range values {
		kind, err := entity.ParseKind(value)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(kinds, kind) {
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}
