// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/grimoire/pkg/pagination"
)

/*
TestSlice_Window covers limits, offsets past the end, and the zero-limit passthrough.
*/
func TestSlice_Window(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name   string
		params pagination.Params
		want   []int
	}{
		{"unbounded", pagination.Params{}, []int{0, 1, 2, 3, 4}},
		{"offset_only", pagination.Params{Offset: 3}, []int{3, 4}},
		{"limit", pagination.Params{Limit: 2}, []int{0, 1}},
		{"window", pagination.Params{Offset: 1, Limit: 2}, []int{1, 2}},
		{"truncated", pagination.Params{Offset: 4, Limit: 10}, []int{4}},
		{"past_end", pagination.Params{Offset: 9, Limit: 2}, []int{}},
		{"negative_offset", pagination.Params{Offset: -3, Limit: 1}, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.Slice(items, tt.params))
		})
	}
}

/*
TestFromRequest_Clamping verifies defaults and clamping of query parameters.
*/
func TestFromRequest_Clamping(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"defaults", "", pagination.Params{Offset: 0, Limit: 20}},
		{"explicit", "?offset=5&limit=10", pagination.Params{Offset: 5, Limit: 10}},
		{"garbage", "?offset=x&limit=y", pagination.Params{Offset: 0, Limit: 20}},
		{"negative", "?offset=-1&limit=-5", pagination.Params{Offset: 0, Limit: 20}},
		{"too_large", "?limit=1000", pagination.Params{Offset: 0, Limit: pagination.MaxLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/api/v1/search"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(request, 20))
		})
	}
}
