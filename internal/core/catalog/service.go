// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package catalog manages the four catalog collections (rules, spells,
// traits, feats) that search providers read and the mention audit scans.
package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/grimoire/internal/core/entity"
	"github.com/taibuivan/grimoire/internal/platform/validate"
	"github.com/taibuivan/grimoire/pkg/fuzzy"
	"github.com/taibuivan/grimoire/pkg/pagination"
	"github.com/taibuivan/grimoire/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns one page of kind and the total number of matching records.
//
// Without a query records keep their stored order (by name). With a query
// they are fuzzy-ranked and carry scores.
func (service *Service) List(ctx context.Context, kind entity.Kind, query string, page pagination.Params) ([]Record, int, error) {
	records, err := service.repo.List(ctx, kind)
	if err != nil {
		return nil, 0, err
	}

	if strings.TrimSpace(query) != "" {
		records = fuzzy.Rank(query, records, pagination.Params{})
	}

	return pagination.Slice(records, page), len(records), nil
}

// Export returns every live record of kind, unpaginated. Search providers
// read this view.
func (service *Service) Export(ctx context.Context, kind entity.Kind) ([]Record, error) {
	return service.repo.List(ctx, kind)
}

func (service *Service) Get(ctx context.Context, kind entity.Kind, id string) (*Record, error) {
	return service.repo.Get(ctx, kind, id)
}

func (service *Service) Create(ctx context.Context, kind entity.Kind, input Input) (*Record, error) {
	record := &Record{ID: uuid.New(), Kind: kind, Status: entity.StatusActive}
	input.apply(record)

	if err := validateRecord(record); err != nil {
		return nil, err
	}

	if err := service.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "catalog_record_created",
		slog.String("kind", string(kind)),
		slog.String("id", record.ID),
		slog.String("name", record.Name),
	)
	return record, nil
}

// Update applies a partial update. Absent fields keep their stored value.
func (service *Service) Update(ctx context.Context, kind entity.Kind, id string, input Input) (*Record, error) {
	record, err := service.repo.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	input.apply(record)
	if err := validateRecord(record); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "catalog_record_updated",
		slog.String("kind", string(kind)),
		slog.String("id", record.ID),
	)
	return record, nil
}

func (service *Service) Delete(ctx context.Context, kind entity.Kind, id string) error {
	if err := service.repo.Delete(ctx, kind, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "catalog_record_deleted",
		slog.String("kind", string(kind)),
		slog.String("id", id),
	)
	return nil
}

func validateRecord(record *Record) error {
	record.Name = strings.TrimSpace(record.Name)
	record.Source = strings.TrimSpace(record.Source)
	spellAttributes := record.Kind.HasSpellAttributes()

	validator := &validate.Validator{}
	validator.
		Required(FieldName, record.Name).
		MaxLen(FieldName, record.Name, maxNameLength).
		MaxLen(FieldSource, record.Source, maxSourceLength).
		MaxLen(FieldDescription, record.Description, maxDescriptionLength).
		OneOf(FieldStatus, string(record.Status), string(entity.StatusActive), string(entity.StatusInactive)).
		Custom(FieldSchool, !spellAttributes && record.School != nil, "Only spells have a school").
		Custom(FieldCircle, !spellAttributes && record.Circle != nil, "Only spells have a circle")

	if spellAttributes && record.Circle != nil {
		validator.Range(FieldCircle, *record.Circle, 0, maxCircle)
	}
	if record.School != nil {
		validator.MaxLen(FieldSchool, *record.School, maxNameLength)
	}

	return validator.Err()
}
