// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/grimoire/internal/platform/apperr"
	"github.com/taibuivan/grimoire/internal/platform/dberr"
)

/*
TestWrap_Classification verifies the SQLSTATE to HTTP mapping.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), http.StatusNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "spell_circle_check"}, http.StatusBadRequest},
		{"bad_uuid", &pgconn.PgError{Code: "22P02"}, http.StatusNotFound},
		{"other", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := apperr.As(dberr.Wrap(tt.err, "Spell"))
			require.NotNil(t, ae)
			assert.Equal(t, tt.status, ae.HTTPStatus)
			assert.ErrorIs(t, ae, tt.err)
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "Spell"))
}
