// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Classification
//
// Uniqueness is enforced by the database itself (unique indexes, not
// application-side existence checks), so two concurrent inserts of the same
// key race at the storage layer and exactly one of them surfaces here as a
// SQLSTATE 23505. Wrap turns that into a client-safe CONFLICT, and a foreign
// key violation (23503, referenced row is gone) into NOT_FOUND.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmkoval/kinoteka/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// The action string names the failed operation for server-side logs; it is
// never exposed to clients.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violation mapping via SQLSTATE
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(conflictMessage(pgError.ConstraintName))
		case pgerrcode.ForeignKeyViolation:
			// Insert/update referencing a row that doesn't exist.
			return apperr.NotFound("Referenced resource")
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	wrapped := apperr.Internal(err)
	wrapped.Cause = &actionError{action: action, cause: err}
	return wrapped
}

// conflictMessage translates a violated constraint name into a client-safe
// message. Constraint names are defined in data/migrations.
func conflictMessage(constraint string) string {
	if msg, ok := conflictMessages[constraint]; ok {
		return msg
	}
	return "Resource already exists"
}

var conflictMessages = map[string]string{
	"category_slug_key":          "Category slug is already taken",
	"genre_slug_key":             "Genre slug is already taken",
	"titlegenre_title_genre_key": "Genre is already assigned to this title",
	"review_title_author_key":    "You have already reviewed this title",
	"account_username_key":       "Username is already taken",
	"account_email_key":          "Email is already registered",
}

// actionError prefixes the failed repository action onto the cause chain so
// server logs can tell which query failed.
type actionError struct {
	action string
	cause  error
}

func (e *actionError) Error() string { return e.action + ": " + e.cause.Error() }

func (e *actionError) Unwrap() error { return e.cause }
