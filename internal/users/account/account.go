// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

/*
Package account handles user profile management and administration.

It provides functionality for users to view and update their own identity
data, and for administrators to manage the whole account roster, including
role assignment.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Permissions: Self-service endpoints never touch the role field; role
    assignment is an administrator-only operation.
*/
package account

import (
	"context"

	"github.com/dmkoval/kinoteka/internal/users/auth"
)

// # Repository Contracts

// Repository defines the persistence contract for account administration.
type Repository interface {
	/*
		ListUsers returns a page of accounts, optionally filtered by a
		username substring.

		Parameters:
		  - context: context.Context
		  - search: string (empty means no filter)
		  - limit: int
		  - offset: int

		Returns:
		  - []*auth.User: Page of accounts
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	ListUsers(context context.Context, search string, limit, offset int) ([]*auth.User, int, error)

	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		FindByUsername retrieves a user record by their unique username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*auth.User, error)

	/*
		Create persists an administrator-provisioned account.

		Parameters:
		  - context: context.Context
		  - user: *auth.User

		Returns:
		  - error: Conflict on duplicate identity, or storage failures
	*/
	Create(context context.Context, user *auth.User) error

	/*
		Update modifies the mutable fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		Delete permanently removes an account by username.

		Description: Deletion cascades to the user's reviews and comments
		through database foreign keys.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: dberr.ErrNotFound if absent, or execution failures
	*/
	Delete(context context.Context, username string) error
}

// # Field Identifiers

// Global field names for validation in the account domain.
const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldBio       = "bio"
	FieldRole      = "role"
)
