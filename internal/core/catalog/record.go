// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"time"

	"github.com/taibuivan/grimoire/internal/core/entity"
	"github.com/taibuivan/grimoire/pkg/fuzzy"
	"github.com/taibuivan/grimoire/pkg/richtext"
)

// Record is a stored rule, spell, trait, or feat.
type Record struct {
	ID          string        `json:"id"`
	Kind        entity.Kind   `json:"type"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Source      string        `json:"source"`
	Status      entity.Status `json:"status"`
	School      *string       `json:"school,omitempty"`
	Circle      *int          `json:"circle,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Score       *float64      `json:"score,omitempty"`
}

// Unified projects the record for cross-kind search and audits.
func (r Record) Unified() entity.Unified {
	return entity.Unified{
		ID:          r.ID,
		Name:        r.Name,
		Type:        r.Kind,
		Description: r.Description,
		Source:      r.Source,
		Status:      r.Status,
		School:      r.School,
		Circle:      r.Circle,
	}
}

// FuzzyFields implements [fuzzy.Document].
func (r Record) FuzzyFields() fuzzy.Fields {
	return fuzzy.Fields{
		Name:        r.Name,
		Source:      r.Source,
		Description: richtext.PlainText(r.Description),
	}
}

// WithScore implements [fuzzy.Scorable].
func (r Record) WithScore(score float64) Record {
	r.Score = &score
	return r
}

// Input is a create or partial update payload. Nil fields are left unchanged
// on update.
type Input struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Source      *string        `json:"source"`
	Status      *entity.Status `json:"status"`
	School      *string        `json:"school"`
	Circle      *int           `json:"circle"`
}

// apply copies the non-nil fields of in onto r.
func (in Input) apply(r *Record) {
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.Source != nil {
		r.Source = *in.Source
	}
	if in.Status != nil {
		r.Status = *in.Status
	}
	if in.School != nil {
		r.School = in.School
	}
	if in.Circle != nil {
		r.Circle = in.Circle
	}
}

// Field names used in validation errors.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldSource      = "source"
	FieldStatus      = "status"
	FieldSchool      = "school"
	FieldCircle      = "circle"
)

// Limits on stored text.
const (
	maxNameLength        = 200
	maxSourceLength      = 200
	maxDescriptionLength = 20000
	maxCircle            = 9
)
