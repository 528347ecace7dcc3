// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmkoval/kinoteka/internal/platform/sec"
)

/*
TestUserRole_IsValid verifies the closed role enumeration.
*/
func TestUserRole_IsValid(t *testing.T) {
	tests := []struct {
		name    string
		role    sec.UserRole
		isValid bool
	}{
		{"admin", sec.RoleAdmin, true},
		{"moderator", sec.RoleModerator, true},
		{"user", sec.RoleUser, true},
		{"unknown", sec.UserRole("superuser"), false},
		{"empty", sec.UserRole(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.role.IsValid())
		})
	}
}

/*
TestUserRole_AtLeast verifies the role hierarchy comparisons.
*/
func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		name   string
		role   sec.UserRole
		target sec.UserRole
		want   bool
	}{
		{"admin_meets_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"admin_meets_moderator", sec.RoleAdmin, sec.RoleModerator, true},
		{"moderator_meets_moderator", sec.RoleModerator, sec.RoleModerator, true},
		{"moderator_below_admin", sec.RoleModerator, sec.RoleAdmin, false},
		{"user_below_moderator", sec.RoleUser, sec.RoleModerator, false},
		{"unknown_below_user", sec.UserRole("ghost"), sec.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}

/*
TestAllRoles verifies that every listed role validates.
*/
func TestAllRoles(t *testing.T) {
	roles := sec.AllRoles()
	assert.Len(t, roles, 3)

	for _, role := range roles {
		assert.True(t, sec.UserRole(role).IsValid())
	}
}
