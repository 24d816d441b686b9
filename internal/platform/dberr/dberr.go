// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/database/schema"
)

// PostgreSQL SQLSTATE codes classified by [Wrap].
const (
	codeUniqueViolation        = "23505"
	codeInvalidTextRepresent   = "22P02"
	codeInvalidDatetimeFormat  = "22007"
	codeCheckViolation         = "23514"
	codeForeignKeyViolation    = "23503"
	codeStringDataRightTrunc   = "22001"
	codeNumericValueOutOfRange = "22003"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// resource names the entity for "not found" messages (e.g. "Post").
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource).WithCause(err)
	}

	// 2. SQLSTATE mapping
	if classified := Classify(err); classified != nil {
		return classified
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", strings.ToLower(resource), err))
}

// Classify maps a PostgreSQL error to an [apperr.AppError], or returns nil
// when err carries no SQLSTATE this package understands.
func Classify(err error) *apperr.AppError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return apperr.Conflict(Capitalize(uniqueField(pgErr)) + " already exists").WithCause(err)

	case codeInvalidTextRepresent, codeInvalidDatetimeFormat:
		return apperr.BadRequest("Resource not found. Invalid: " + invalidField(pgErr)).WithCause(err)

	case codeCheckViolation, codeStringDataRightTrunc, codeNumericValueOutOfRange, codeForeignKeyViolation:
		return apperr.Unprocessable("Invalid value for " + invalidField(pgErr)).WithCause(err)
	}

	return nil
}

// Capitalize upper-cases the first letter of a field name for client messages.
// Casers are stateful, so each call builds its own.
func Capitalize(field string) string {
	if field == "" {
		return field
	}
	return cases.Title(language.English).String(field[:1]) + field[1:]
}

// uniqueField resolves the API field behind a unique violation.
func uniqueField(pgErr *pgconn.PgError) string {
	if field, ok := schema.UniqueFields[pgErr.ConstraintName]; ok {
		return field
	}
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	return "Resource"
}

// invalidField names the offending column when PostgreSQL reports it.
func invalidField(pgErr *pgconn.PgError) string {
	switch {
	case pgErr.ColumnName != "":
		return pgErr.ColumnName
	case pgErr.ConstraintName != "":
		return pgErr.ConstraintName
	default:
		return "id"
	}
}
