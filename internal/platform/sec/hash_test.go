// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/sec"
)

/*
TestPasswordHash verifies hashing and comparison, including the degenerate hashes.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("Password123")
	require.NoError(t, err)
	assert.NotEqual(t, "Password123", hash)

	assert.True(t, sec.CheckPasswordHash("Password123", hash))
	assert.False(t, sec.CheckPasswordHash("password123", hash))
	assert.False(t, sec.CheckPasswordHash("Password123", ""))
	assert.False(t, sec.CheckPasswordHash("Password123", "not-a-bcrypt-hash"))
}

/*
TestUserRole verifies the closed role set and membership checks.
*/
func TestUserRole(t *testing.T) {
	assert.True(t, sec.RoleAdmin.Valid())
	assert.True(t, sec.RoleUser.Valid())
	assert.False(t, sec.UserRole("moderator").Valid())

	assert.True(t, sec.RoleAdmin.In(sec.RoleUser, sec.RoleAdmin))
	assert.False(t, sec.RoleUser.In(sec.RoleAdmin))
	assert.False(t, sec.RoleUser.In())
}
