// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package entity defines the catalog kinds and the unified projection used
// for cross-kind search.
package entity

import (
	"fmt"
	"strings"

	"github.com/taibuivan/grimoire/pkg/fuzzy"
	"github.com/taibuivan/grimoire/pkg/richtext"
)

// # Kinds

// Kind tags which catalog collection a record belongs to.
type Kind string

const (
	KindRule  Kind = "Rule"
	KindSpell Kind = "Spell"
	KindTrait Kind = "Trait"
	KindFeat  Kind = "Feat"
)

// Kinds lists every kind in registry order.
var Kinds = []Kind{KindRule, KindSpell, KindTrait, KindFeat}

var labels = map[Kind]map[string]string{
	KindRule:  {"en": "Rule", "es": "Regla"},
	KindSpell: {"en": "Spell", "es": "Conjuro"},
	KindTrait: {"en": "Trait", "es": "Rasgo"},
	KindFeat:  {"en": "Feat", "es": "Dote"},
}

// Collection is the plural URL segment for the kind ("spells").
func (k Kind) Collection() string {
	return strings.ToLower(string(k)) + "s"
}

// Label returns the display name in lang, falling back to English.
func (k Kind) Label(lang string) string {
	names, ok := labels[k]
	if !ok {
		return string(k)
	}
	if name, ok := names[lang]; ok {
		return name
	}
	return names["en"]
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := labels[k]
	return ok
}

// HasSpellAttributes reports whether records of k carry school and circle.
func (k Kind) HasSpellAttributes() bool {
	return k == KindSpell
}

// ParseKind resolves a kind from its name or collection segment,
// case-insensitively ("spell", "Spells", "SPELL").
func ParseKind(value string) (Kind, error) {
	for _, kind := range Kinds {
		if strings.EqualFold(value, string(kind)) || strings.EqualFold(value, kind.Collection()) {
			return kind, nil
		}
	}
	return "", fmt.Errorf("entity: unknown kind %q", value)
}

// # Status

// Status is the visibility flag of a catalog record.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// OrDefault returns s, or [StatusActive] when s is empty.
func (s Status) OrDefault() Status {
	if s == "" {
		return StatusActive
	}
	return s
}

// # Unified projection

// Unified is the kind-independent view of a catalog record.
//
// ID is never empty. Score is set only on results of a ranked search.
type Unified struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        Kind     `json:"type"`
	Description string   `json:"description,omitempty"`
	Source      string   `json:"source,omitempty"`
	Status      Status   `json:"status"`
	School      *string  `json:"school,omitempty"`
	Circle      *int     `json:"circle,omitempty"`
	Score       *float64 `json:"score,omitempty"`

	plainDescription *string
}

// FuzzyFields exposes the ranked fields. Descriptions are matched on their
// visible text only, taken from [Unified.WithPlainText] when it was applied.
func (u Unified) FuzzyFields() fuzzy.Fields {
	var description string
	if u.plainDescription != nil {
		description = *u.plainDescription
	} else {
		description = richtext.PlainText(u.Description)
	}

	return fuzzy.Fields{
		Name:        u.Name,
		Source:      u.Source,
		Description: description,
	}
}

// WithPlainText returns a copy of u with the visible description text
// computed once. The precomputed text is not serialized.
func (u Unified) WithPlainText() Unified {
	plain := richtext.PlainText(u.Description)
	u.plainDescription = &plain
	return u
}

// WithScore returns a copy of u carrying score.
func (u Unified) WithScore(score float64) Unified {
	u.Score = &score
	return u
}
