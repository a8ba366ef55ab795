// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dberr provides a bridge between low-level PostgreSQL errors and
higher-level application errors.

It inspects the SQLSTATE of a failed statement and classifies it into one of
the canonical [apperr.AppError] kinds:

  - pgx.ErrNoRows            → NotFound
  - 23505 unique_violation   → Conflict
  - 40001 / 40P01            → Unavailable (retryable; transaction was rolled back)
  - 08xxx connection class   → Unavailable (retryable)
  - 57014 query_canceled     → Unavailable (statement timeout released a stalled lock)
  - everything else          → Internal

Internal database details are never surfaced to the client.
*/
package dberr

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/tsuzuki/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
//
// The resource name is used for NOT_FOUND messages; conflictMsg for unique
// violations. Errors that are already an [*apperr.AppError] pass through
// untouched so repository guard helpers keep their classification.
func Wrap(err error, resource, conflictMsg string) error {
	if err == nil {
		return nil
	}

	// Pass-through for errors classified upstream (ownership guard, etc.).
	if apperr.IsAppError(err) {
		return err
	}

	// Absent row mapping.
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// Context cancellation: the caller aborted mid-request and pgx rolled the
	// transaction back. Classified as retryable since no state was applied.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperr.Unavailable(err)
	}

	// SQLSTATE classification.
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch {
		case pgError.Code == pgerrcode.UniqueViolation:
			return apperr.Conflict(conflictMsg)
		case pgError.Code == pgerrcode.SerializationFailure,
			pgError.Code == pgerrcode.DeadlockDetected,
			pgError.Code == pgerrcode.QueryCanceled:
			return apperr.Unavailable(err)
		case pgerrcode.IsConnectionException(pgError.Code):
			return apperr.Unavailable(err)
		case pgError.Code == pgerrcode.ForeignKeyViolation:
			return apperr.NotFound(resource)
		}
	}

	// Connectivity failures below the protocol level (dial errors, closed pool).
	if pgconn.SafeToRetry(err) {
		return apperr.Unavailable(err)
	}

	// Unknown query errors become Internal Server Errors.
	return apperr.Internal(err)
}
