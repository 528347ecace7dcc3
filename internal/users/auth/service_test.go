// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmkoval/kinoteka/internal/platform/apperr"
	"github.com/dmkoval/kinoteka/internal/platform/sec"
)

// fakeUserRepository keeps accounts in memory and counts Create calls so
// tests can tell a re-issue apart from a fresh registration.
type fakeUserRepository struct {
	users       map[string]*User
	createCalls int
}

func newFakeUserRepository(seed ...*User) *fakeUserRepository {
	repo := &fakeUserRepository{users: map[string]*User{}}
	for _, user := range seed {
		repo.users[user.Username] = user
	}
	return repo
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) Create(_ context.Context, user *User) error {
	f.createCalls++
	f.users[user.Username] = user
	return nil
}

// fakeCodeRepository mirrors the Redis-backed store: one hashed code per
// username, Set overwrites, Get on a missing key is NOT_FOUND.
type fakeCodeRepository struct {
	hashes map[string]string
}

func newFakeCodeRepository() *fakeCodeRepository {
	return &fakeCodeRepository{hashes: map[string]string{}}
}

func (f *fakeCodeRepository) Set(_ context.Context, username, codeHash string, _ time.Duration) error {
	f.hashes[username] = codeHash
	return nil
}

func (f *fakeCodeRepository) Get(_ context.Context, username string) (string, error) {
	codeHash, ok := f.hashes[username]
	if !ok {
		return "", apperr.NotFound("Confirmation code is invalid or expired")
	}
	return codeHash, nil
}

func (f *fakeCodeRepository) Delete(_ context.Context, username string) error {
	delete(f.hashes, username)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return fmt.Sprintf("token-for-%s", userID), nil
}

func newTestService(users *fakeUserRepository, codes *fakeCodeRepository) *Service {
	return NewService(users, codes, fakeTokenProvider{}, slog.Default())
}

func TestSignup_NewUser(t *testing.T) {
	users := newFakeUserRepository()
	codes := newFakeCodeRepository()
	service := newTestService(users, codes)

	user, err := service.Signup(context.Background(), SignupInput{
		Username: "critic42",
		Email:    "critic42@example.com",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.Equal(t, 1, users.createCalls)
	assert.Contains(t, codes.hashes, "critic42")
}

func TestSignup_SamePairReissuesCode(t *testing.T) {
	existing := &User{ID: "u-1", Username: "critic42", Email: "critic42@example.com", Role: sec.RoleUser}
	users := newFakeUserRepository(existing)
	codes := newFakeCodeRepository()
	codes.hashes["critic42"] = "stale-hash"
	service := newTestService(users, codes)

	user, err := service.Signup(context.Background(), SignupInput{
		Username: "critic42",
		Email:    "critic42@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, 0, users.createCalls)
	// The previous code is overwritten, not kept alongside the new one.
	assert.NotEqual(t, "stale-hash", codes.hashes["critic42"])
}

func TestSignup_PartialCollisionConflicts(t *testing.T) {
	existing := &User{ID: "u-1", Username: "critic42", Email: "critic42@example.com", Role: sec.RoleUser}

	tests := []struct {
		name  string
		input SignupInput
	}{
		{
			name:  "username_taken",
			input: SignupInput{Username: "critic42", Email: "other@example.com"},
		},
		{
			name:  "email_taken",
			input: SignupInput{Username: "newcomer", Email: "critic42@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserRepository(existing)
			codes := newFakeCodeRepository()
			service := newTestService(users, codes)

			_, err := service.Signup(context.Background(), tt.input)

			require.Error(t, err)
			assert.True(t, apperr.IsConflict(err))
			assert.Empty(t, codes.hashes)
		})
	}
}

func TestToken_UnknownUsername(t *testing.T) {
	service := newTestService(newFakeUserRepository(), newFakeCodeRepository())

	_, err := service.Token(context.Background(), TokenInput{
		Username:         "ghost",
		ConfirmationCode: "123456",
	})

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestToken_ExpiredCode(t *testing.T) {
	existing := &User{ID: "u-1", Username: "critic42", Email: "critic42@example.com", Role: sec.RoleUser}
	service := newTestService(newFakeUserRepository(existing), newFakeCodeRepository())

	_, err := service.Token(context.Background(), TokenInput{
		Username:         "critic42",
		ConfirmationCode: "123456",
	})

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestToken_WrongCode(t *testing.T) {
	existing := &User{ID: "u-1", Username: "critic42", Email: "critic42@example.com", Role: sec.RoleUser}
	codes := newFakeCodeRepository()
	codeHash, err := sec.HashCode("654321")
	require.NoError(t, err)
	codes.hashes["critic42"] = codeHash
	service := newTestService(newFakeUserRepository(existing), codes)

	_, err = service.Token(context.Background(), TokenInput{
		Username:         "critic42",
		ConfirmationCode: "123456",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, FieldConfirmationCode, ae.Details[0].Field)
	// A failed attempt does not spend the code.
	assert.Contains(t, codes.hashes, "critic42")
}

func TestToken_HappyPathSpendsCode(t *testing.T) {
	existing := &User{ID: "u-1", Username: "critic42", Email: "critic42@example.com", Role: sec.RoleUser}
	codes := newFakeCodeRepository()
	codeHash, err := sec.HashCode("654321")
	require.NoError(t, err)
	codes.hashes["critic42"] = codeHash
	service := newTestService(newFakeUserRepository(existing), codes)

	accessToken, err := service.Token(context.Background(), TokenInput{
		Username:         "critic42",
		ConfirmationCode: "654321",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-for-u-1", accessToken)
	assert.NotContains(t, codes.hashes, "critic42")
}
