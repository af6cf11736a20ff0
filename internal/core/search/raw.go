// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/taibuivan/grimoire/internal/core/entity"
	"github.com/taibuivan/grimoire/pkg/pointer"
)

// # Identifiers

// RawID is an identifier as a provider serialized it. It accepts JSON
// strings, numbers, and object ids ({"$oid": "..."}), and always holds a
// string. Anything else decodes to empty rather than failing the record.
type RawID string

// UnmarshalJSON implements [json.Unmarshaler].
func (id *RawID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ""

	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*id = ""
			return nil
		}
		*id = RawID(strings.TrimSpace(s))

	case data[0] == '{':
		var object struct {
			OID *RawID `json:"$oid"`
			ID  *RawID `json:"id"`
		}
		if err := json.Unmarshal(data, &object); err != nil {
			*id = ""
			return nil
		}
		*id = pointer.Val(object.OID)
		if *id == "" {
			*id = pointer.Val(object.ID)
		}

	default:
		var number json.Number
		if err := json.Unmarshal(data, &number); err != nil {
			*id = ""
			return nil
		}
		*id = RawID(number.String())
	}
	return nil
}

// identity holds the two conventional identifier keys.
type identity struct {
	ID       *RawID `json:"id"`
	ObjectID *RawID `json:"_id"`
}

// resolve looks up "id" first, then "_id", returning the first non-empty.
func (i identity) resolve() string {
	if id := pointer.Val(i.ID); id != "" {
		return string(id)
	}
	return string(pointer.Val(i.ObjectID))
}

// common carries the fields every catalog kind shares.
type common struct {
	identity
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Source      *string `json:"source"`
	Status      *string `json:"status"`
}

func (c common) unified(kind entity.Kind) entity.Unified {
	return entity.Unified{
		ID:          c.resolve(),
		Name:        strings.TrimSpace(pointer.Val(c.Name)),
		Type:        kind,
		Description: pointer.Val(c.Description),
		Source:      pointer.Val(c.Source),
		Status:      entity.Status(pointer.Val(c.Status)).OrDefault(),
	}
}

// # Raw records

// RawRule is a rule as served by the rules endpoint.
type RawRule struct {
	common
}

// RawTrait is a trait as served by the traits endpoint.
type RawTrait struct {
	common
}

// RawFeat is a feat as served by the feats endpoint.
type RawFeat struct {
	common
	// Some sources publish the prerequisite inline instead of in the description.
	Prerequisite *string `json:"prerequisite"`
}

// RawSpell is a spell as served by the spells endpoint.
type RawSpell struct {
	common
	School *string `json:"school"`
	Circle circle  `json:"circle"`
}

// circle is an optional spell level that accepts 3 and "3".
type circle struct {
	level int
	valid bool
}

// UnmarshalJSON implements [json.Unmarshaler]. Unparseable values
// ("cantrip", null) leave the circle absent.
func (c *circle) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	level, err := strconv.Atoi(text)
	*c = circle{level: level, valid: err == nil}
	return nil
}

// # Mapping

// MapRule projects a rule.
func MapRule(raw RawRule) entity.Unified {
	return raw.unified(entity.KindRule)
}

// MapTrait projects a trait.
func MapTrait(raw RawTrait) entity.Unified {
	return raw.unified(entity.KindTrait)
}

// MapFeat projects a feat, folding an inline prerequisite into the
// description so it stays searchable.
func MapFeat(raw RawFeat) entity.Unified {
	unified := raw.unified(entity.KindFeat)
	if prerequisite := strings.TrimSpace(pointer.Val(raw.Prerequisite)); prerequisite != "" {
		unified.Description = strings.TrimSpace("Prerequisite: " + prerequisite + "\n" + unified.Description)
	}
	return unified
}

// MapSpell projects a spell with its school and circle.
func MapSpell(raw RawSpell) entity.Unified {
	unified := raw.unified(entity.KindSpell)
	unified.School = pointer.NonZero(strings.TrimSpace(pointer.Val(raw.School)))
	if raw.Circle.valid {
		unified.Circle = pointer.To(raw.Circle.level)
	}
	return unified
}
