// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/grimoire/internal/core/entity"
	"github.com/taibuivan/grimoire/internal/platform/middleware"
	requestutil "github.com/taibuivan/grimoire/internal/platform/request"
	"github.com/taibuivan/grimoire/internal/platform/respond"
	"github.com/taibuivan/grimoire/internal/platform/sec"
	"github.com/taibuivan/grimoire/internal/platform/validate"
	"github.com/taibuivan/grimoire/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))
		adminRoute.Get("/mentions", handler.listMentionIssues)
	})
}

// listMentionIssues handles GET /admin/mentions?types=spells,feats.
func (handler *Handler) listMentionIssues(writer http.ResponseWriter, request *http.Request) {
	kinds, err := parseKinds(request.URL.Query().Get("types"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	issues, err := handler.service.Audit(request.Context(), requestutil.Language(request), kinds)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, issues)
}

func parseKinds(raw string) ([]entity.Kind, error) {
	var kinds []entity.Kind
	for _, value := range query.StringSlice(raw) {
		kind, err := entity.ParseKind(value)
		if err != nil {
			return nil, validate.FieldErr("types", "Unknown type: "+value)
		}
		if !slices.Contains(kinds, kind) {
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}
