// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

/*
Package auth provides the HTTP delivery layer for the signup lifecycle.

It implements the gateway for the passwordless registration flow: requesting
a confirmation code and exchanging it for an access token.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Confirmation codes never appear in responses, only tokens do.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/dmkoval/kinoteka/internal/platform/constants"
	requestutil "github.com/dmkoval/kinoteka/internal/platform/request"
	"github.com/dmkoval/kinoteka/internal/platform/respond"
	"github.com/dmkoval/kinoteka/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points
// (Signup, Token exchange).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup : Registers an identity and emails a confirmation code.
//   - POST /token  : Exchanges a confirmation code for a JWT.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signup", handler.signup)
	router.Post("/token", handler.token)

	return router
}

// # Request Payloads

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

/*
Signup registers a new identity and triggers confirmation code delivery.

POST /api/v1/auth/signup

Description: Validates input, checks for identity conflicts, persists a new
user profile, and issues a confirmation code. Repeating the call with the
same username/email pair re-issues the code.

Request:
  - Body: signupRequest (Username, Email)

Response:
  - 200: {username, email}: Code issued
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username or Email belongs to another account
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Username(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, constants.MaxUsernameLength).
		Custom(FieldUsername, slices.Contains(ReservedUsernames, input.Username), "This username is reserved").
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Signup(request.Context(), SignupInput{
		Username: input.Username,
		Email:    input.Email,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldUsername: user.Username,
		FieldEmail:    user.Email,
	})
}

/*
Token exchanges a confirmation code for a JWT access token.

POST /api/v1/auth/token

Description: Verifies the submitted code against its stored hash and, on
success, signs and returns an access token.

Request:
  - Body: tokenRequest (Username, ConfirmationCode)

Response:
  - 200: {token}: Signed JWT
  - 400: ErrInvalidJSON: Bad input or wrong code
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldConfirmationCode, input.ConfirmationCode)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	accessToken, err := handler.authService.Token(request.Context(), TokenInput{
		Username:         input.Username,
		ConfirmationCode: input.ConfirmationCode,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldToken: accessToken,
	})
}
