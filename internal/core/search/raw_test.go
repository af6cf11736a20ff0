// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/grimoire/internal/core/entity"
)

/*
TestRawID_Decoding covers every identifier shape providers emit.
*/
func TestRawID_Decoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  RawID
	}{
		{"string", `"0190f5b4-8d2a"`, "0190f5b4-8d2a"},
		{"padded_string", `"  42 "`, "42"},
		{"integer", `42`, "42"},
		{"object_id", `{"$oid":"65a1f0c2e4b0a1b2c3d4e5f6"}`, "65a1f0c2e4b0a1b2c3d4e5f6"},
		{"nested_id", `{"id":7}`, "7"},
		{"null", `null`, ""},
		{"boolean", `true`, ""},
		{"array", `[1,2]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id RawID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.want, id)
		})
	}
}

/*
TestMapping_IdentifierFallback verifies the id then _id lookup.
*/
func TestMapping_IdentifierFallback(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"id_only", `{"id":"a","name":"Grapple"}`, "a"},
		{"underscore_only", `{"_id":"x","name":"Grapple"}`, "x"},
		{"empty_id_falls_back", `{"id":"","_id":"x","name":"Grapple"}`, "x"},
		{"null_id_falls_back", `{"id":null,"_id":"x","name":"Grapple"}`, "x"},
		{"object_id", `{"_id":{"$oid":"abc"},"name":"Grapple"}`, "abc"},
		{"id_preferred", `{"id":"a","_id":"b","name":"Grapple"}`, "a"},
		{"numeric", `{"id":12}`, "12"},
		{"missing", `{"name":"Grapple"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw RawRule
			require.NoError(t, json.Unmarshal([]byte(tt.input), &raw))
			assert.Equal(t, tt.want, MapRule(raw).ID)
		})
	}
}

/*
TestMapSpell_OptionalFields checks defaulting of absent and loosely typed fields.
*/
func TestMapSpell_OptionalFields(t *testing.T) {
	var full RawSpell
	require.NoError(t, json.Unmarshal([]byte(`{
		"_id": "s1", "name": " Fireball ", "school": "Evocation", "circle": "3",
		"source": "PHB", "status": "inactive", "description": "<p>Boom</p>"
	}`), &full))

	spell := MapSpell(full)
	assert.Equal(t, "s1", spell.ID)
	assert.Equal(t, "Fireball", spell.Name)
	assert.Equal(t, entity.KindSpell, spell.Type)
	assert.Equal(t, entity.StatusInactive, spell.Status)
	require.NotNil(t, spell.School)
	assert.Equal(t, "Evocation", *spell.School)
	require.NotNil(t, spell.Circle)
	assert.Equal(t, 3, *spell.Circle)
	assert.Nil(t, spell.Score)

	var sparse RawSpell
	require.NoError(t, json.Unmarshal([]byte(`{"id": 9, "circle": "cantrip", "school": ""}`), &sparse))

	spell = MapSpell(sparse)
	assert.Equal(t, "9", spell.ID)
	assert.Equal(t, entity.StatusActive, spell.Status)
	assert.Nil(t, spell.School)
	assert.Nil(t, spell.Circle)
}

/*
TestMapFeat_Prerequisite folds inline prerequisites into the searchable description.
*/
func TestMapFeat_Prerequisite(t *testing.T) {
	var raw RawFeat
	require.NoError(t, json.Unmarshal([]byte(`{"id":"f","name":"Grappler","prerequisite":"Strength 13","description":"Hold tight."}`), &raw))

	assert.Equal(t, "Prerequisite: Strength 13\nHold tight.", MapFeat(raw).Description)
}

/*
TestUnwrap_Shapes verifies bare arrays, each nesting key, and failure modes.
*/
func TestUnwrap_Shapes(t *testing.T) {
	keys := unwrapKeys("spells")
	assert.Equal(t, []string{"data", "spells", "items", "results"}, keys)

	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr bool
	}{
		{"bare_array", `[{"id":"1"},{"id":"2"}]`, []string{"1", "2"}, false},
		{"data", `{"data":[{"id":"1"}],"meta":{"total":1}}`, []string{"1"}, false},
		{"collection", `{"spells":[{"id":"1"}]}`, []string{"1"}, false},
		{"items", `{"items":[{"id":"1"}]}`, []string{"1"}, false},
		{"results", `{"results":[{"_id":"1"}]}`, []string{"1"}, false},
		{"first_key_wins", `{"results":[{"id":"r"}],"data":[{"id":"d"}]}`, []string{"d"}, false},
		{"null_collection", `{"data":null}`, []string{}, false},
		{"malformed_element_skipped", `[{"id":"1"},{"name":5},{"id":"3"}]`, []string{"1", "3"}, false},
		{"unknown_key", `{"records":[]}`, nil, true},
		{"not_json", `<html>`, nil, true},
		{"empty", ``, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := unwrap[RawSpell]([]byte(tt.body), keys)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			got := make([]string, 0, len(records))
			for _, record := range records {
				got = append(got, MapSpell(record).ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
