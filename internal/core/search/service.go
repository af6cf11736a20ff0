// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package search implements unified fuzzy search across the four catalog
// kinds.
//
// # Flow
//
//	providers (HTTP, one per kind) -> Aggregator (TTL snapshot) -> fuzzy.Rank
//
// Providers fail independently; the aggregation always completes with
// whatever the healthy providers returned.
package search

import (
	"context"
	"strings"

	"github.com/taibuivan/grimoire/internal/core/entity"
	"github.com/taibuivan/grimoire/pkg/fuzzy"
	"github.com/taibuivan/grimoire/pkg/pagination"
)

// EntitySource yields the merged candidate collection.
type EntitySource interface {
	Entities(ctx context.Context) ([]entity.Unified, error)
}

// Service is the public search entry point.
type Service struct {
	source       EntitySource
	defaultLimit int
}

// NewService builds a service. A non-positive defaultLimit falls back to
// [pagination.DefaultLimit].
func NewService(source EntitySource, defaultLimit int) *Service {
	if defaultLimit <= 0 {
		defaultLimit = pagination.DefaultLimit
	}
	return &Service{source: source, defaultLimit: defaultLimit}
}

// Search ranks the catalog against query.
//
// A blank query returns an empty result without consulting the source. A
// zero page limit means the default limit, never "everything".
func (service *Service) Search(ctx context.Context, query string, page pagination.Params) ([]entity.Unified, error) {
	if strings.TrimSpace(query) == "" {
		return []entity.Unified{}, nil
	}

	if page.Limit <= 0 {
		page.Limit = service.defaultLimit
	}

	candidates, err := service.source.Entities(ctx)
	if err != nil {
		return nil, err
	}

	return fuzzy.Rank(query, candidates, page), nil
}
