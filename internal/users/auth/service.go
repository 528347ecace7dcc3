// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

/*
Package auth implements the core identity and access management flow.

It handles the passwordless registration lifecycle: issuing hashed
confirmation codes (stored in Redis with a TTL) and exchanging verified
codes for RSA-signed JWT access tokens.

Architecture:

  - Service: Orchestrates business logic (Signup, Token).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Codes).
  - Security: Leverages Bcrypt code hashing and RSA-signed JWTs.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmkoval/kinoteka/internal/platform/apperr"
	"github.com/dmkoval/kinoteka/internal/platform/constants"
	"github.com/dmkoval/kinoteka/internal/platform/sec"
	"github.com/dmkoval/kinoteka/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements the signup and token issuance use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code hashing or
// token issuance logic must be reviewed before merging.
type Service struct {
	userRepository UserRepository
	codeRepository CodeRepository
	tokenProvider  TokenProvider
	logger         *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	codeRepo CodeRepository,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		codeRepository: codeRepo,
		tokenProvider:  tokenProv,
		logger:         logger,
	}
}

// # Registration Flow

// SignupInput holds the data required to request a confirmation code.
type SignupInput struct {
	Username string
	Email    string
}

/*
Signup registers a new identity (or re-engages an existing one) and issues
a fresh confirmation code.

Description: Signing up again with the exact username/email pair of an
existing account is not an error: it re-issues the code, so users who lost
the original email can retry. A username or email that collides with a
DIFFERENT account is a Conflict.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: The new or existing account
  - err: Conflict (if identity partially exists) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {

	user, err := service.userRepository.FindByUsername(context, input.Username)

	switch {
	case err == nil && user.Email == input.Email:
		// Same pair: an existing account asking for a fresh code.

	case err == nil:
		return nil, apperr.Conflict("Username is already taken")

	default:
		// Username is free. The email must be free too.
		if _, emailErr := service.userRepository.FindByEmail(context, input.Email); emailErr == nil {
			return nil, apperr.Conflict("Email is already registered")
		}

		// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
		user = &User{
			ID:       uuid.New(),
			Username: input.Username,
			Email:    input.Email,
			Role:     sec.RoleUser,
		}

		if err := service.userRepository.Create(context, user); err != nil {
			return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
		}
	}

	if err := service.issueConfirmationCode(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// issueConfirmationCode generates a fresh code, stores its hash in the
// volatile store, and hands the plain text off for delivery.
func (service *Service) issueConfirmationCode(context context.Context, user *User) error {

	code, err := sec.NewConfirmationCode(constants.ConfirmationCodeLength)
	if err != nil {
		return fmt.Errorf("auth_service_code_generation_failed: %w", err)
	}

	codeHash, err := sec.HashCode(code)
	if err != nil {
		return fmt.Errorf("auth_service_code_hash_failed: %w", err)
	}

	// Re-signup overwrites the previous code: only the latest one is valid.
	if err := service.codeRepository.Set(context, user.Username, codeHash, constants.ConfirmationCodeTTL); err != nil {
		return fmt.Errorf("auth_service_code_store_failed: %w", err)
	}

	// TODO: hand the plain-text code to the mail delivery worker once the
	// SMTP relay is provisioned. Until then it lands in the debug log.
	service.logger.Info("confirmation_code_issued", slog.String("username", user.Username))
	service.logger.Debug("confirmation_code_value", slog.String("username", user.Username), slog.String("code", code))

	return nil
}

// # Token Issuance Flow

// TokenInput defines credentials for a code-to-token exchange.
type TokenInput struct {
	Username         string
	ConfirmationCode string
}

/*
Token exchanges a valid confirmation code for a JWT access token.

Description: Looks up the user, performs a constant-time comparison of the
submitted code against its stored bcrypt hash, and signs an access token.
The code is single-use: it is deleted once a token has been issued.

Parameters:
  - context: context.Context
  - input: TokenInput

Returns:
  - string: Signed JWT access token
  - err: NotFound (unknown username), ValidationError (bad code), or internal failures
*/
func (service *Service) Token(context context.Context, input TokenInput) (string, error) {

	// Unknown username is NOT_FOUND, not UNAUTHORIZED: signup is open, so
	// there is no user enumeration concern here.
	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		return "", apperr.NotFound("User")
	}

	codeHash, err := service.codeRepository.Get(context, user.Username)
	if err != nil {
		return "", err
	}

	// Constant-time comparison in bcrypt prevents timing attacks.
	if !sec.CheckCodeHash(input.ConfirmationCode, codeHash) {
		return "", apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldConfirmationCode,
			Message: "Confirmation code is invalid",
		})
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), constants.AccessTokenTTL,
	)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Single-use: a code that has produced a token is spent.
	_ = service.codeRepository.Delete(context, user.Username)

	service.logger.Info("access_token_issued", slog.String("username", user.Username))
	return accessToken, nil
}
