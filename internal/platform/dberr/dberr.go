// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies database errors into [apperr.AppError] values.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/grimoire/internal/platform/apperr"
)

// SQLSTATE codes handled explicitly.
const (
	codeUniqueViolation  = "23505"
	codeCheckViolation   = "23514"
	codeInvalidTextValue = "22P02"
)

// Wrap maps err to a client-safe error for resource. The original error is
// kept as the cause for server-side logging.
//
//   - pgx.ErrNoRows or malformed uuid literal -> 404
//   - unique violation -> 409
//   - check violation -> 400
//   - anything else -> 500
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource).WithCause(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperr.Conflict(resource + " already exists").WithCause(err)
		case codeCheckViolation:
			return apperr.ValidationError("Constraint violated: " + pgErr.ConstraintName).WithCause(err)
		case codeInvalidTextValue:
			return apperr.NotFound(resource).WithCause(err)
		}
	}

	return apperr.Internal(err)
}
