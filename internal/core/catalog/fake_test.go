// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/grimoire/internal/core/catalog"
	"github.com/taibuivan/grimoire/internal/core/entity"
	"github.com/taibuivan/grimoire/internal/platform/apperr"
)

// memoryRepository is an in-memory [catalog.Repository].
type memoryRepository struct {
	mu      sync.Mutex
	records map[string]catalog.Record
}

func newMemoryRepository(seed ...catalog.Record) *memoryRepository {
	repository := &memoryRepository{records: map[string]catalog.Record{}}
	for _, record := range seed {
		repository.records[record.ID] = record
	}
	return repository
}

func (m *memoryRepository) List(_ context.Context, kind entity.Kind) ([]catalog.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]catalog.Record, 0)
	for _, record := range m.records {
		if record.Kind == kind {
			records = append(records, record)
		}
	}
	slices.SortFunc(records, func(a, b catalog.Record) int { return strings.Compare(a.Name, b.Name) })
	return records, nil
}

func (m *memoryRepository) Get(_ context.Context, kind entity.Kind, id string) (*catalog.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok || record.Kind != kind {
		return nil, apperr.NotFound(string(kind))
	}
	return &record, nil
}

func (m *memoryRepository) Create(_ context.Context, record *catalog.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record.CreatedAt, record.UpdatedAt = now, now
	m.records[record.ID] = *record
	return nil
}

func (m *memoryRepository) Update(_ context.Context, record *catalog.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[record.ID]; !ok {
		return apperr.NotFound(string(record.Kind))
	}
	m.records[record.ID] = *record
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, kind entity.Kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if record, ok := m.records[id]; !ok || record.Kind != kind {
		return apperr.NotFound(string(kind))
	}
	delete(m.records, id)
	return nil
}

func (m *memoryRepository) ListMentionCandidates(ctx context.Context, kind entity.Kind) ([]entity.Unified, error) {
	records, _ := m.List(ctx, kind)

	var candidates []entity.Unified
	for _, record := range records {
		if strings.Contains(record.Description, "@") {
			candidates = append(candidates, record.Unified())
		}
	}
	return candidates, nil
}

func seedRecords() []catalog.Record {
	circle := 3
	school := "Evocation"
	return []catalog.Record{
		{ID: "s1", Kind: entity.KindSpell, Name: "Fireball", Source: "PHB", Status: entity.StatusActive, School: &school, Circle: &circle},
		{ID: "s2", Kind: entity.KindSpell, Name: "Fire Bolt", Source: "PHB", Status: entity.StatusActive},
		{ID: "s3", Kind: entity.KindSpell, Name: "Shield", Source: "PHB", Status: entity.StatusActive, Description: "Blocks @Magic Missile"},
		{ID: "f1", Kind: entity.KindFeat, Name: "Alert", Source: "PHB", Status: entity.StatusActive},
	}
}
