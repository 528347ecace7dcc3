// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

package account

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmkoval/kinoteka/internal/platform/apperr"
	"github.com/dmkoval/kinoteka/internal/platform/sec"
	"github.com/dmkoval/kinoteka/internal/users/auth"
	"github.com/dmkoval/kinoteka/pkg/pointer"
)

// fakeRepository holds accounts in memory, keyed by username, and enforces
// the same username/email uniqueness the Postgres store does.
type fakeRepository struct {
	users map[string]*auth.User
}

func newFakeRepository(seed ...*auth.User) *fakeRepository {
	repo := &fakeRepository{users: map[string]*auth.User{}}
	for _, user := range seed {
		repo.users[user.Username] = user
	}
	return repo
}

func (f *fakeRepository) ListUsers(_ context.Context, _ string, _, _ int) ([]*auth.User, int, error) {
	out := make([]*auth.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, len(out), nil
}

func (f *fakeRepository) FindByID(_ context.Context, userID string) (*auth.User, error) {
	for _, user := range f.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (f *fakeRepository) Create(_ context.Context, user *auth.User) error {
	if _, ok := f.users[user.Username]; ok {
		return apperr.Conflict("Username is already taken")
	}
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return apperr.Conflict("Email is already registered")
		}
	}
	f.users[user.Username] = user
	return nil
}

func (f *fakeRepository) Update(_ context.Context, user *auth.User) error {
	f.users[user.Username] = user
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, username string) error {
	if _, ok := f.users[username]; !ok {
		return apperr.NotFound("User")
	}
	delete(f.users, username)
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.Default())
}

func seedUser() *auth.User {
	return &auth.User{
		ID:       "u-1",
		Username: "critic42",
		Email:    "critic42@example.com",
		Role:     sec.RoleUser,
	}
}

func TestCreateUser_DefaultsRole(t *testing.T) {
	service := newTestService(newFakeRepository())

	user, err := service.CreateUser(context.Background(), CreateInput{
		Username: "critic42",
		Email:    "critic42@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
}

func TestCreateUser_ExplicitRole(t *testing.T) {
	service := newTestService(newFakeRepository())

	user, err := service.CreateUser(context.Background(), CreateInput{
		Username: "sentinel",
		Email:    "sentinel@example.com",
		Role:     "moderator",
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, user.Role)
}

func TestCreateUser_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		input CreateInput
		field string
	}{
		{
			name:  "unknown_role",
			input: CreateInput{Username: "critic42", Email: "critic42@example.com", Role: "superuser"},
			field: FieldRole,
		},
		{
			name:  "reserved_username",
			input: CreateInput{Username: "me", Email: "me@example.com"},
			field: FieldUsername,
		},
		{
			name:  "malformed_email",
			input: CreateInput{Username: "critic42", Email: "not-an-email"},
			field: FieldEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeRepository())

			_, err := service.CreateUser(context.Background(), tt.input)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)

			fields := make([]string, 0, len(ae.Details))
			for _, detail := range ae.Details {
				fields = append(fields, detail.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestCreateUser_DuplicateConflicts(t *testing.T) {
	service := newTestService(newFakeRepository(seedUser()))

	_, err := service.CreateUser(context.Background(), CreateInput{
		Username: "critic42",
		Email:    "fresh@example.com",
	})

	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestUpdateUser_AdminCanChangeRole(t *testing.T) {
	repo := newFakeRepository(seedUser())
	service := newTestService(repo)

	user, err := service.UpdateUser(context.Background(), "critic42", UpdateInput{
		Role: pointer.To("moderator"),
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, user.Role)
	assert.Equal(t, sec.RoleModerator, repo.users["critic42"].Role)
}

func TestUpdateUser_RejectsUnknownRole(t *testing.T) {
	service := newTestService(newFakeRepository(seedUser()))

	_, err := service.UpdateUser(context.Background(), "critic42", UpdateInput{
		Role: pointer.To("root"),
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestUpdateProfile_RoleChangeForbidden(t *testing.T) {
	service := newTestService(newFakeRepository(seedUser()))

	_, err := service.UpdateProfile(context.Background(), "u-1", UpdateInput{
		Role: pointer.To("admin"),
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

func TestUpdateProfile_PartialDelta(t *testing.T) {
	repo := newFakeRepository(seedUser())
	service := newTestService(repo)

	user, err := service.UpdateProfile(context.Background(), "u-1", UpdateInput{
		Bio: pointer.To("Watches everything twice."),
	})

	require.NoError(t, err)
	assert.Equal(t, "Watches everything twice.", user.Bio)
	// Untouched fields survive the partial update.
	assert.Equal(t, "critic42@example.com", user.Email)
}

func TestDeleteUser_NotFound(t *testing.T) {
	service := newTestService(newFakeRepository())

	err := service.DeleteUser(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
