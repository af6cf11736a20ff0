// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/taibuivan/grimoire/internal/core/entity"
)

// maxResponseBytes bounds a single provider response.
const maxResponseBytes = 32 << 20

// Provider supplies the unified records of one catalog kind.
type Provider interface {
	Name() entity.Kind
	Load(ctx context.Context) ([]entity.Unified, error)
}

// HTTPProvider fetches raw records of type R from a JSON endpoint and maps
// them with a pure function.
type HTTPProvider[R any] struct {
	kind    entity.Kind
	url     string
	keys    []string
	client  *http.Client
	mapping func(R) entity.Unified
}

// NewHTTPProvider builds a provider for kind reading <baseURL>/<collection>.
func NewHTTPProvider[R any](kind entity.Kind, baseURL string, client *http.Client, mapping func(R) entity.Unified) *HTTPProvider[R] {
	collection := kind.Collection()
	return &HTTPProvider[R]{
		kind:    kind,
		url:     strings.TrimRight(baseURL, "/") + "/" + collection,
		keys:    unwrapKeys(collection),
		client:  client,
		mapping: mapping,
	}
}

// Name returns the kind this provider serves.
func (p *HTTPProvider[R]) Name() entity.Kind { return p.kind }

// URL returns the endpoint the provider reads.
func (p *HTTPProvider[R]) URL() string { return p.url }

// Fetch retrieves and unwraps the raw collection. Non-2xx responses are errors.
func (p *HTTPProvider[R]) Fetch(ctx context.Context) ([]R, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("search: %s: build request: %w", p.kind, err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := p.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("search: %s: fetch: %w", p.kind, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, 4<<10))
		return nil, fmt.Errorf("search: %s: unexpected status %d", p.kind, response.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("search: %s: read body: %w", p.kind, err)
	}

	records, err := unwrap[R](body, p.keys)
	if err != nil {
		return nil, fmt.Errorf("search: %s: %w", p.kind, err)
	}
	return records, nil
}

// Map projects one raw record.
func (p *HTTPProvider[R]) Map(raw R) entity.Unified {
	return p.mapping(raw)
}

// Load fetches and maps the collection. Records without any identifier are
// dropped since they cannot be correlated by callers.
func (p *HTTPProvider[R]) Load(ctx context.Context) ([]entity.Unified, error) {
	records, err := p.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	unified := make([]entity.Unified, 0, len(records))
	for _, record := range records {
		if mapped := p.Map(record); mapped.ID != "" {
			unified = append(unified, mapped)
		}
	}
	return unified, nil
}

// Registry returns one provider per kind, in [entity.Kinds] order.
func Registry(baseURL string, client *http.Client) []Provider {
	if client == nil {
		client = http.DefaultClient
	}
	return []Provider{
		NewHTTPProvider(entity.KindRule, baseURL, client, MapRule),
		NewHTTPProvider(entity.KindSpell, baseURL, client, MapSpell),
		NewHTTPProvider(entity.KindTrait, baseURL, client, MapTrait),
		NewHTTPProvider(entity.KindFeat, baseURL, client, MapFeat),
	}
}
