// Copyright (c) 2026 Kaede CMS. All rights reserved.

// Package dberr bridges low-level database errors into the application
// error taxonomy.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ymiyake/kaede/internal/platform/apperr"
)

// Postgres SQLSTATE codes we classify explicitly.
const (
	sqlstateUniqueViolation = "23505"
	sqlstateForeignKey      = "23503"
)

// Wrap inspects a database error and converts it into a meaningful
// [apperr.AppError]. Internal database details never reach the client.
//
// # Parameters
//   - err: The raw error from the pgx driver.
//   - notFoundMsg: Client-facing message when no row matched.
//   - storageMsg: Client-facing message for any other failure.
func Wrap(err error, notFoundMsg, storageMsg string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(notFoundMsg)
	}

	// 2. Constraint violations indicate an integrity problem, not a storage
	// outage, so they get their own class.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlstateUniqueViolation, sqlstateForeignKey:
			failure := apperr.DataIntegrity("データの整合性エラーが発生しました")
			failure.Cause = err
			return failure
		}
	}

	// 3. Everything else is an opaque storage failure.
	return apperr.Storage(storageMsg, err)
}
