// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

/*
TestMiddleware_UsesRoutePattern verifies that path labels come from the chi pattern.
*/
func TestMiddleware_UsesRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Middleware())
	router.Get("/api/v1/spells/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/spells/{id}", "418"))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/spells/abc", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/spells/def", nil))

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/spells/{id}", "418"))
	assert.Equal(t, before+2, after)
}

/*
TestRoutePattern_OutsideRouter falls back to "unknown".
*/
func TestRoutePattern_OutsideRouter(t *testing.T) {
	assert.Equal(t, "unknown", routePattern(httptest.NewRequest(http.MethodGet, "/x", nil)))
}
