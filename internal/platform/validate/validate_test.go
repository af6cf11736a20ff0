// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/grimoire/internal/platform/apperr"
	"github.com/taibuivan/grimoire/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field rule.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Fireball", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("name", tt.value)

			if !tt.hasError {
				assert.False(t, v.HasErrors())
				assert.NoError(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, "name", ae.Details[0].Field)
		})
	}
}

/*
TestValidator_OneOf checks membership against the allowed set.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("status", "active", "active", "inactive")
	assert.False(t, v.HasErrors())

	v.OneOf("status", "archived", "active", "inactive")
	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	assert.Equal(t, "Must be one of: active, inactive", ae.Details[0].Message)
}

/*
TestValidator_Chain_Failure tests error accumulation across rules.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	err := (&validate.Validator{}).
		Required("name", "").
		MaxLen("source", "Player's Handbook", 5).
		Range("circle", 12, 0, 9).
		UUID("id", "not-a-uuid").
		Custom("school", true, "Only spells have a school").
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 5)
}

/*
TestValidator_UUID accepts upper-case UUIDv7 strings.
*/
func TestValidator_UUID(t *testing.T) {
	v := &validate.Validator{}
	v.UUID("id", "0190F5B4-8D2A-7C3E-9A11-3F2B6C7D8E9F")
	assert.False(t, v.HasErrors())
}
