// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmkoval/kinoteka/internal/platform/apperr"
	"github.com/dmkoval/kinoteka/internal/platform/dberr"
)

/*
TestWrap_Nil verifies that a nil error passes through untouched.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "any_action"))
}

/*
TestWrap_NoRows verifies the pgx.ErrNoRows to NOT_FOUND mapping.
*/
func TestWrap_NoRows(t *testing.T) {
	err := dberr.Wrap(pgx.ErrNoRows, "get_title")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestWrap_UniqueViolation verifies that SQLSTATE 23505 becomes a CONFLICT
with a constraint-specific message.
*/
func TestWrap_UniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		message    string
	}{
		{"category_slug", "category_slug_key", "Category slug is already taken"},
		{"genre_slug", "genre_slug_key", "Genre slug is already taken"},
		{"review_pair", "review_title_author_key", "You have already reviewed this title"},
		{"username", "account_username_key", "Username is already taken"},
		{"email", "account_email_key", "Email is already registered"},
		{"unknown_constraint", "some_future_key", "Resource already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgErr := &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: tt.constraint,
			}

			err := dberr.Wrap(pgErr, "insert")

			require.Error(t, err)
			assert.True(t, apperr.IsConflict(err))

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.message, ae.Message)
		})
	}
}

/*
TestWrap_ForeignKeyViolation verifies that SQLSTATE 23503 reads as a
missing referenced resource.
*/
func TestWrap_ForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           pgerrcode.ForeignKeyViolation,
		ConstraintName: "review_title_fkey",
	}

	err := dberr.Wrap(pgErr, "create_review")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestWrap_Unknown verifies that unclassified errors become INTERNAL_ERROR
while keeping the action in the cause chain for server logs.
*/
func TestWrap_Unknown(t *testing.T) {
	cause := errors.New("connection reset by peer")

	err := dberr.Wrap(cause, "list_titles")

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)

	// The cause chain keeps both the action and the original error.
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, ae.Cause.Error(), "list_titles")
}
