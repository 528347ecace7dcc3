// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmkoval/kinoteka/internal/platform/sec"
)

/*
TestHashCode verifies that codes hash and verify round-trip, and that a
wrong code is rejected.
*/
func TestHashCode(t *testing.T) {
	hash, err := sec.HashCode("482916")
	require.NoError(t, err)
	assert.NotEqual(t, "482916", hash)

	assert.True(t, sec.CheckCodeHash("482916", hash))
	assert.False(t, sec.CheckCodeHash("000000", hash))
	assert.False(t, sec.CheckCodeHash("482916", "not-a-bcrypt-hash"))
}

/*
TestNewConfirmationCode verifies length and digit-only output.
*/
func TestNewConfirmationCode(t *testing.T) {
	code, err := sec.NewConfirmationCode(6)
	require.NoError(t, err)
	require.Len(t, code, 6)

	for _, c := range code {
		assert.GreaterOrEqual(t, c, '0')
		assert.LessOrEqual(t, c, '9')
	}
}
