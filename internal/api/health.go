// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/grimoire/internal/platform/constants"
	"github.com/taibuivan/grimoire/internal/platform/ctxutil"
	"github.com/taibuivan/grimoire/internal/platform/respond"
)

// probeTimeout bounds each readiness probe.
const probeTimeout = 2 * time.Second

// Probe checks one backing dependency.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

type probeResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready handlers. Probes run
// concurrently on every readiness call.
func NewHealthHandlers(probes ...Probe) (liveness, readiness http.HandlerFunc) {
	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		results := make([]probeResult, len(probes))

		var group errgroup.Group
		for i, probe := range probes {
			group.Go(func() error {
				probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
				defer cancel()

				results[i] = probeResult{Name: probe.Name, OK: true}
				if err := probe.Check(probeCtx); err != nil {
					results[i].OK = false
					results[i].Error = err.Error()
				}
				return nil
			})
		}
		_ = group.Wait()

		status, code := "ready", http.StatusOK
		for _, result := range results {
			if !result.OK {
				status, code = "degraded", http.StatusServiceUnavailable
				ctxutil.GetLogger(ctx).WarnContext(ctx, "readiness_check_failed",
					slog.String("dependency", result.Name),
					slog.String("error", result.Error),
				)
			}
		}

		respond.JSON(writer, code, respond.SuccessEnvelope{Data: map[string]any{
			constants.FieldStatus: status,
			constants.FieldChecks: results,
		}})
	}

	return liveness, readiness
}
