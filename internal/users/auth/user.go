// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

/*
Package auth implements the user identity and signup lifecycle.

It defines the core [User] entity and the logic for the two-step,
passwordless registration flow: an email/username pair receives a short
numeric confirmation code, and exchanging that code yields a JWT access token.

# Architecture

This layer is the "Truth" of the identity system. Entities defined here have
no external dependencies and encapsulate all business rules related to signup.
*/
package auth

import (
	"time"

	"github.com/dmkoval/kinoteka/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Kinoteka platform.
//
// There is no password field: authentication is confirmation-code based,
// and codes live in the volatile store, never in this entity.
type User struct {
	ID        string       `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name,omitempty"`
	LastName  string       `json:"last_name,omitempty"`
	Bio       string       `json:"bio,omitempty"`
	Role      sec.UserRole `json:"role"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the signup domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldToken            = "token"
	FieldMessage          = "message"
)

// ReservedUsernames cannot be registered: they collide with API routes.
var ReservedUsernames = []string{"me"}
