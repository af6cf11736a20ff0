// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Grimoire HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL and run migrations.
//  4. Connect to Redis when configured.
//  5. Wire catalog, search, and audit.
//  6. Start HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/grimoire/internal/api"
	"github.com/taibuivan/grimoire/internal/core/audit"
	"github.com/taibuivan/grimoire/internal/core/catalog"
	"github.com/taibuivan/grimoire/internal/core/search"
	"github.com/taibuivan/grimoire/internal/platform/config"
	"github.com/taibuivan/grimoire/internal/platform/constants"
	"github.com/taibuivan/grimoire/internal/platform/metrics"
	"github.com/taibuivan/grimoire/internal/platform/migration"
	pgstore "github.com/taibuivan/grimoire/internal/platform/postgres"
	redisstore "github.com/taibuivan/grimoire/internal/platform/redis"
	"github.com/taibuivan/grimoire/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	logger := newLogger(slog.LevelInfo)
	logger.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(logger, err, "load configuration")

	if cfg.Debug {
		logger = newLogger(slog.LevelDebug)
		logger.Debug("debug_logging_enabled")
	}

	logger.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("cache_backend", cfg.SearchCacheBackend),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	must(logger, migration.Up(cfg.DatabaseURL, cfg.MigrationPath, logger), "run migrations")

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, logger)
	must(logger, err, "connect to postgres")
	defer pool.Close()

	probes := []api.Probe{{
		Name:  "postgres",
		Check: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}}

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var snapshotStore search.SnapshotStore = search.NewMemoryStore()

	if cfg.RedisURL != "" {
		client, err := redisstore.NewClient(startupCtx, cfg.RedisURL, logger)
		must(logger, err, "connect to redis")
		defer closeRedis(logger, client)

		probes = append(probes, api.Probe{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisstore.Ping(ctx, client) },
		})

		if cfg.SearchCacheBackend == config.CacheBackendRedis {
			snapshotStore = search.NewRedisStore(client, constants.RedisKeySearchSnapshot, cfg.SearchCacheTTL)
		}
	}

	// ── 5. Token verification ─────────────────────────────────────────────
	verifier, err := sec.NewVerifier(cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(logger, err, "load jwt public key")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	catalogRepository := catalog.NewPostgresRepository(pool)
	catalogService := catalog.NewService(catalogRepository, logger)

	aggregator := search.NewAggregator(
		search.Registry(cfg.CatalogBaseURL, &http.Client{Timeout: cfg.ProviderTimeout}),
		cfg.SearchCacheTTL,
		search.WithStore(snapshotStore),
		search.WithMetrics(metrics.SearchCacheTotal, metrics.ProviderFetchFailures),
	)
	searchService := search.NewService(aggregator, cfg.SearchDefaultLimit)

	auditService := audit.NewService(catalogRepository, audit.NewDetector(cfg.MentionMarker), metrics.MentionIssues)

	liveness, readiness := api.NewHealthHandlers(probes...)

	server := api.NewServer(rootCtx, cfg, logger, verifier, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Search:    search.NewHandler(searchService),
		Catalog:   catalog.NewHandler(catalogService),
		Audit:     audit.NewHandler(auditService),
	})

	// ── 7. Serve until signalled ──────────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown_signal_received")
	case err := <-serverErr:
		logger.Error("server_failed", slog.Any("error", err))
	}

	logger.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		logger.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server_stopped")
}

func newLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(logger)
	return logger
}

func closeRedis(logger *slog.Logger, client *goredis.Client) {
	if err := client.Close(); err != nil {
		logger.Error("redis_close_error", slog.Any("error", err))
	}
}

// must terminates the process on startup errors. After startup every error is
// returned and handled.
func must(logger *slog.Logger, err error, step string) {
	if err != nil {
		logger.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
