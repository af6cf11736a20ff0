// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/grimoire/internal/platform/respond"
	"github.com/taibuivan/grimoire/pkg/pagination"
)

type Handler struct {
	service      *Service
	defaultLimit int
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service, defaultLimit: service.defaultLimit}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.search)
}

// search handles GET /search?q=&limit=&offset=.
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query().Get("q")
	page := pagination.FromRequest(request, handler.defaultLimit)

	results, err := handler.service.Search(request.Context(), query, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, results)
}
