// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

package account

import (
	"context"
	"log/slog"
	"slices"

	"github.com/dmkoval/kinoteka/internal/platform/apperr"
	"github.com/dmkoval/kinoteka/internal/platform/constants"
	"github.com/dmkoval/kinoteka/internal/platform/sec"
	"github.com/dmkoval/kinoteka/internal/platform/validate"
	"github.com/dmkoval/kinoteka/internal/users/auth"
	"github.com/dmkoval/kinoteka/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for account administration and
// self-service profile management.
type Service struct {
	accountRepository Repository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Administration

/*
ListUsers returns a page of accounts for the administration panel.

Parameters:
  - context: context.Context
  - search: string (username substring filter, empty for all)
  - limit: int
  - offset: int

Returns:
  - []*auth.User: Page of accounts
  - int: Total matching count
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context, search string, limit, offset int) ([]*auth.User, int, error) {
	return service.accountRepository.ListUsers(context, search, limit, offset)
}

// CreateInput holds the data for an administrator-provisioned account.
type CreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

/*
CreateUser provisions a new account with an explicit role.

Description: Unlike self-service signup, this path allows the caller to
assign any role from the closed enumeration. An empty role defaults to
the standard user role.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *auth.User: Created account
  - err: Validation, Conflict, or storage failures
*/
func (service *Service) CreateUser(context context.Context, input CreateInput) (*auth.User, error) {
	if input.Role == "" {
		input.Role = string(sec.RoleUser)
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Username(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, constants.MaxUsernameLength).
		Custom(FieldUsername, slices.Contains(auth.ReservedUsernames, input.Username), "This username is reserved").
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		OneOf(FieldRole, input.Role, sec.AllRoles()...)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user := &auth.User{
		ID:        uuid.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      sec.UserRole(input.Role),
	}

	// Duplicate usernames and emails surface as CONFLICT from the store.
	if err := service.accountRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

/*
GetUser retrieves the account with the given username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: Hydrated account
  - error: NotFound or retrieval failures
*/
func (service *Service) GetUser(context context.Context, username string) (*auth.User, error) {
	return service.accountRepository.FindByUsername(context, username)
}

// UpdateInput defines the mutable subset of account fields. Nil pointers
// mean "leave unchanged".
type UpdateInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

/*
UpdateUser applies a partial set of changes to an account, including the role.

Parameters:
  - context: context.Context
  - username: string
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: Validation, NotFound, Conflict, or storage failures
*/
func (service *Service) UpdateUser(context context.Context, username string, input UpdateInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	if err := applyProfileDelta(user, input); err != nil {
		return nil, err
	}

	if input.Role != nil {
		validator := &validate.Validator{}
		validator.OneOf(FieldRole, *input.Role, sec.AllRoles()...)
		if err := validator.Err(); err != nil {
			return nil, err
		}
		user.Role = sec.UserRole(*input.Role)
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated", slog.String("username", user.Username))
	return user, nil
}

/*
DeleteUser permanently removes an account by username.

Description: The user's reviews and comments are removed in the same
statement through ON DELETE CASCADE foreign keys.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: NotFound or execution failures
*/
func (service *Service) DeleteUser(context context.Context, username string) error {
	if err := service.accountRepository.Delete(context, username); err != nil {
		return err
	}

	service.logger.Warn("user_deleted", slog.String("username", username))
	return nil
}

// # Self-Service

/*
GetProfile retrieves the full private identity of the authenticated user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: NotFound or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	return service.accountRepository.FindByID(context, userID)
}

/*
UpdateProfile applies a partial set of changes to the authenticated user's
own account.

Description: The role field is not self-editable: a role change submitted
through this path is rejected, not silently ignored.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateInput

Returns:
  - *auth.User: The updated profile
  - error: Forbidden (role change attempt), Validation, Conflict, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateInput) (*auth.User, error) {
	if input.Role != nil {
		return nil, apperr.Forbidden("You cannot change your own role")
	}

	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if err := applyProfileDelta(user, input); err != nil {
		return nil, err
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("username", user.Username))
	return user, nil
}

// applyProfileDelta validates and applies the non-role fields of input.
func applyProfileDelta(user *auth.User, input UpdateInput) error {
	validator := &validate.Validator{}

	if input.Email != nil {
		validator.Required(FieldEmail, *input.Email).Email(FieldEmail, *input.Email)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	return nil
}
