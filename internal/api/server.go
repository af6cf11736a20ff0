// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Routes:

  - /health, /ready: container probes.
  - /metrics: Prometheus scrape endpoint.
  - /api/v1/search: unified fuzzy search.
  - /api/v1/{collection}: catalog reads and editor writes.
  - /api/v1/export/{collection}: unpaginated views read by search providers.
  - /api/v1/admin/mentions: mention audit.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/grimoire/internal/core/audit"
	"github.com/taibuivan/grimoire/internal/core/catalog"
	"github.com/taibuivan/grimoire/internal/core/search"
	"github.com/taibuivan/grimoire/internal/platform/config"
	"github.com/taibuivan/grimoire/internal/platform/constants"
	"github.com/taibuivan/grimoire/internal/platform/metrics"
	"github.com/taibuivan/grimoire/internal/platform/middleware"
)

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	logger     *slog.Logger
}

// Handlers groups the domain handler sets mounted by [NewServer].
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Search  *search.Handler
	Catalog *catalog.Handler
	Audit   *audit.Handler
}

// NewServer constructs the router with the full middleware chain and
// registers all route groups. ctx bounds background middleware work.
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, verifier middleware.TokenVerifier, handlers Handlers) *Server {
	router := chi.NewRouter()

	// # Middleware Chain
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(metrics.Middleware())
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.RateLimit(ctx))
	router.Use(middleware.PanicRecovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.Authenticate(verifier))
	router.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	router.Get("/health", handlers.Liveness)
	router.Get("/ready", handlers.Readiness)
	router.Handle("/metrics", promhttp.Handler())

	// # Application API
	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/search", handlers.Search.RegisterRoutes)
		api.Route("/export", handlers.Catalog.RegisterExportRoutes)
		api.Route("/admin", handlers.Audit.RegisterRoutes)
		handlers.Catalog.RegisterRoutes(api)
	})

	return &Server{
		router: router,
		logger: logger,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until the server is closed or fails.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
