// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the catalog schema with golang-migrate.
//
// The API runs [Up] at startup; grimoirectl exposes the same operations to
// operators.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Registers the "pgx5" database scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// Registers the "file" source scheme.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Status describes the schema version recorded in the database.
type Status struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
	Fresh   bool `json:"fresh"`
}

// Up applies all pending migrations found under path.
func Up(dsn, path string, logger *slog.Logger) error {
	return withMigrator(dsn, path, logger, func(migrator *migrate.Migrate) error {
		before, err := readStatus(migrator)
		if err != nil {
			return err
		}
		if before.Dirty {
			return fmt.Errorf("migration: database is dirty at version %d, fix it manually", before.Version)
		}

		if err := migrator.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				logger.Info("migration_up_to_date", slog.Uint64("version", uint64(before.Version)))
				return nil
			}
			return fmt.Errorf("migration: up failed: %w", err)
		}

		after, err := readStatus(migrator)
		if err != nil {
			return err
		}
		logger.Info("migration_applied",
			slog.Uint64("from_version", uint64(before.Version)),
			slog.Uint64("to_version", uint64(after.Version)),
		)
		return nil
	})
}

// Version reports the current schema version without changing it.
func Version(dsn, path string, logger *slog.Logger) (Status, error) {
	var status Status
	err := withMigrator(dsn, path, logger, func(migrator *migrate.Migrate) error {
		var err error
		status, err = readStatus(migrator)
		return err
	})
	return status, err
}

func withMigrator(dsn, path string, logger *slog.Logger, run func(*migrate.Migrate) error) error {
	migrator, err := migrate.New("file://"+path, pgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceErr, databaseErr := migrator.Close()
		if err := errors.Join(sourceErr, databaseErr); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}()

	migrator.Log = &slogAdapter{logger: logger}
	return run(migrator)
}

func readStatus(migrator *migrate.Migrate) (Status, error) {
	version, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return Status{Fresh: true}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("migration: failed to read version: %w", err)
	}
	return Status{Version: version, Dirty: dirty}, nil
}

// pgx5DSN rewrites postgres:// and postgresql:// URLs to the scheme the
// pgx/v5 migrate driver registers.
func pgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogAdapter implements migrate.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Printf(format string, args ...any) {
	a.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (a *slogAdapter) Verbose() bool { return false }
