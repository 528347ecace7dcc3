// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts
// as seen by the signup flow.
type UserRepository interface {

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error
}

// # Volatile Data Access

// CodeRepository defines the contract for storing volatile confirmation codes.
//
// Codes are keyed by username and stored hashed: the volatile store never
// sees the plain-text code that travels over email.
type CodeRepository interface {

	/*
		Set stores a hashed confirmation code for a username with a limited duration.

		Parameters:
		  - context: context.Context
		  - username: string
		  - codeHash: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, username, codeHash string, ttl time.Duration) error

	/*
		Get retrieves the hashed confirmation code for a username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - string: Hashed code
		  - error: apperr.NotFound if absent or expired, or retrieval failures
	*/
	Get(context context.Context, username string) (string, error)

	/*
		Delete removes a confirmation code after successful use.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, username string) error
}
