// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Classification
//
//   - pgx.ErrNoRows and foreign-key violations (23503): NOT_FOUND for resource.
//   - Unique violations (23505): CONFLICT.
//   - Malformed values (22P02, 22003) and NOT NULL violations (23502): VALIDATION_ERROR.
//   - Anything else: INTERNAL_ERROR carrying "action: cause" for the logs.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			notFound := apperr.NotFound(pgErr.ConstraintName)
			notFound.Cause = err
			return notFound
		case pgerrcode.UniqueViolation:
			conflict := apperr.Conflict(resource + " already exists")
			conflict.Cause = err
			return conflict
		case pgerrcode.InvalidTextRepresentation,
			pgerrcode.NumericValueOutOfRange,
			pgerrcode.NotNullViolation:
			invalid := apperr.InvalidField(pgErr.ColumnName, pgErr.Message)
			invalid.Cause = err
			return invalid
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
