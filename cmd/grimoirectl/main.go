// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command grimoirectl is the operator CLI: it searches the catalog, runs the
// mention audit, applies migrations, and mints access tokens.
//
// Settings come from the same environment variables as the API server and
// can be overridden per call with flags.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/taibuivan/grimoire/internal/platform/constants"
)

// settings is the CLI view of the server environment. Nothing is required
// up front; each command checks what it needs.
type settings struct {
	DatabaseURL    string        `env:"DATABASE_URL"`
	MigrationPath  string        `env:"MIGRATION_PATH"       envDefault:"./data/migrations"`
	CatalogBaseURL string        `env:"CATALOG_BASE_URL"     envDefault:"http://localhost:8080/api/v1/export"`
	Timeout        time.Duration `env:"PROVIDER_TIMEOUT"     envDefault:"10s"`
	JWTPubKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH"`
	JWTPrivKeyPath string        `env:"JWT_PRIVATE_KEY_PATH"`
	MentionMarker  string        `env:"MENTION_MARKER"       envDefault:"data-type=\"mention\""`
}

func main() {
	root, err := newRootCmd(os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, error) {
	cfg := &settings{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("grimoirectl: parse environment: %w", err)
	}

	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "grimoirectl"))

	root := &cobra.Command{
		Use:          "grimoirectl",
		Short:        "Operate the Grimoire catalog",
		Version:      constants.AppVersion,
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	cobra.EnableTraverseRunHooks = true
	root.PersistentFlags().BoolP("verbose", "v", false, "log at info level")
	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level.Set(slog.LevelInfo)
		}
	}

	root.AddCommand(
		newSearchCmd(cfg),
		newAuditCmd(cfg, logger),
		newMigrateCmd(cfg, logger),
		newTokenCmd(cfg),
	)
	return root, nil
}

// printJSON writes value as indented JSON.
func printJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
