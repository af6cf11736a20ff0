// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides offset/limit windows for list endpoints.
//
// A zero Limit means "no limit": the window runs from Offset to the end.
// Search endpoints substitute their own default before ranking.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the page size used when the request does not name one.
	DefaultLimit = 20
	// MaxLimit bounds client-supplied limits.
	MaxLimit = 100
)

// Params is an offset/limit window.
type Params struct {
	Offset int
	Limit  int
}

// Bounds returns the [lo, hi) indexes of the window over n items.
func (p Params) Bounds(n int) (lo, hi int) {
	lo = min(max(p.Offset, 0), n)
	hi = n
	if p.Limit > 0 {
		hi = min(lo+p.Limit, n)
	}
	return lo, hi
}

// Slice returns the window of items. The result aliases items.
func Slice[T any](items []T, p Params) []T {
	lo, hi := p.Bounds(len(items))
	return items[lo:hi]
}

// Meta is the pagination metadata included in list responses.
type Meta struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

// NewMeta builds response metadata for a window over total items.
func NewMeta(p Params, total int) Meta {
	return Meta{Offset: p.Offset, Limit: p.Limit, Total: total}
}

// FromRequest parses "offset" and "limit" query parameters.
//
// Malformed or negative values fall back to 0 and defaultLimit; limits above
// [MaxLimit] are clamped.
func FromRequest(r *http.Request, defaultLimit int) Params {
	offset := intParam(r, "offset", 0)
	limit := intParam(r, "limit", defaultLimit)

	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Offset: offset, Limit: limit}
}

func intParam(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
