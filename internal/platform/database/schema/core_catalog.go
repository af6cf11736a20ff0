// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns queried by the repositories.
//
// The four catalog collections share one column layout; spells add the
// school and circle attributes.
package schema

import "github.com/taibuivan/grimoire/internal/platform/constants"

// CatalogTable describes one catalog collection table.
type CatalogTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	Source      string
	Status      string
	School      string
	Circle      string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string

	// SpellAttributes is true when the table carries School and Circle.
	SpellAttributes bool
}

func catalogTable(name string, spellAttributes bool) CatalogTable {
	return CatalogTable{
		Table:           constants.SchemaCore + "." + name,
		ID:              "id",
		Name:            "name",
		Description:     "description",
		Source:          "source",
		Status:          "status",
		School:          "school",
		Circle:          "circle",
		CreatedAt:       "createdat",
		UpdatedAt:       "updatedat",
		DeletedAt:       "deletedat",
		SpellAttributes: spellAttributes,
	}
}

var (
	CoreRule  = catalogTable("rule", false)
	CoreSpell = catalogTable("spell", true)
	CoreTrait = catalogTable("trait", false)
	CoreFeat  = catalogTable("feat", false)
)

// Columns returns the selectable columns in scan order. Tables without
// spell attributes project NULL in their place so every table scans alike.
func (t CatalogTable) Columns() []string {
	school, circle := t.School, t.Circle
	if !t.SpellAttributes {
		school, circle = "NULL::text", "NULL::smallint"
	}
	return []string{t.ID, t.Name, t.Description, t.Source, t.Status, school, circle, t.CreatedAt, t.UpdatedAt}
}
