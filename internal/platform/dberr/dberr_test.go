// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tsuzuki/internal/platform/apperr"
	"github.com/taibuivan/tsuzuki/internal/platform/dberr"
)

/*
TestWrap_Classification verifies that raw PostgreSQL errors are mapped to the
correct application error kinds.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name          string
		input         error
		wantCode      string
		wantRetryable bool
	}{
		{"no_rows", pgx.ErrNoRows, "NOT_FOUND", false},
		{"unique_violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, "CONFLICT", false},
		{"serialization_failure", &pgconn.PgError{Code: pgerrcode.SerializationFailure}, "UNAVAILABLE", true},
		{"deadlock", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, "UNAVAILABLE", true},
		{"statement_timeout", &pgconn.PgError{Code: pgerrcode.QueryCanceled}, "UNAVAILABLE", true},
		{"connection_failure", &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, "UNAVAILABLE", true},
		{"fk_violation", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "NOT_FOUND", false},
		{"context_canceled", context.Canceled, "UNAVAILABLE", true},
		{"unknown", errors.New("boom"), "INTERNAL_ERROR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dberr.Wrap(tt.input, "Series", "Duplicate entry")
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
			assert.Equal(t, tt.wantRetryable, apperr.IsRetryable(err))
		})
	}
}

/*
TestWrap_PassThrough verifies that pre-classified application errors keep
their kind instead of being re-wrapped as Internal.
*/
func TestWrap_PassThrough(t *testing.T) {
	forbidden := apperr.Forbidden("Only the author may publish chapters")

	err := dberr.Wrap(forbidden, "Series", "")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

/*
TestWrap_Nil verifies that nil errors stay nil.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Series", ""))
}
