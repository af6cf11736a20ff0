// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/grimoire/internal/core/entity"
	"github.com/taibuivan/grimoire/internal/platform/middleware"
	requestutil "github.com/taibuivan/grimoire/internal/platform/request"
	"github.com/taibuivan/grimoire/internal/platform/respond"
	"github.com/taibuivan/grimoire/internal/platform/sec"
	"github.com/taibuivan/grimoire/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /{collection} for every kind.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	for _, kind := range entity.Kinds {
		router.Route("/"+kind.Collection(), func(kindRoute chi.Router) {
			// Public
			kindRoute.Get("/", handler.list(kind))
			kindRoute.Get("/{id}", handler.get(kind))

			// Editors and above
			kindRoute.Group(func(editorRoute chi.Router) {
				editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

				editorRoute.Post("/", handler.create(kind))
				editorRoute.Patch("/{id}", handler.update(kind))

				// Admin strict only
				editorRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.delete(kind))
			})
		})
	}
}

// RegisterExportRoutes mounts the unpaginated /{collection} views read by
// search providers.
func (handler *Handler) RegisterExportRoutes(router chi.Router) {
	for _, kind := range entity.Kinds {
		router.Get("/"+kind.Collection(), handler.export(kind))
	}
}

func (handler *Handler) list(kind entity.Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		page := pagination.FromRequest(request, pagination.DefaultLimit)
		query := request.URL.Query().Get("q")

		records, total, err := handler.service.List(request.Context(), kind, query, page)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.Paginated(writer, records, pagination.NewMeta(page, total))
	}
}

func (handler *Handler) export(kind entity.Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		records, err := handler.service.Export(request.Context(), kind)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, records)
	}
}

func (handler *Handler) get(kind entity.Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		record, err := handler.service.Get(request.Context(), kind, requestutil.Param(request, "id"))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, record)
	}
}

func (handler *Handler) create(kind entity.Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var input Input
		if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		record, err := handler.service.Create(request.Context(), kind, input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Created(writer, record)
	}
}

func (handler *Handler) update(kind entity.Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var input Input
		if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		record, err := handler.service.Update(request.Context(), kind, requestutil.Param(request, "id"), input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, record)
	}
}

func (handler *Handler) delete(kind entity.Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if err := handler.service.Delete(request.Context(), kind, requestutil.Param(request, "id")); err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.NoContent(writer)
	}
}
