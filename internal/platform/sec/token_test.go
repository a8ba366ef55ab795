// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tsuzuki/internal/platform/sec"
)

/*
TestGenerateSecureToken verifies token length and uniqueness across draws.
*/
func TestGenerateSecureToken(t *testing.T) {
	// 1. Hex encoding doubles the byte length
	token, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Len(t, token, 64)

	// 2. Two draws never collide
	other, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

/*
TestHashToken verifies the digest is deterministic, fixed-width, and does
not expose the input.
*/
func TestHashToken(t *testing.T) {
	digest := sec.HashToken("refresh-token-value")

	// 1. SHA-256 hex is always 64 characters
	assert.Len(t, digest, 64)

	// 2. Deterministic for the same input
	assert.Equal(t, digest, sec.HashToken("refresh-token-value"))

	// 3. Distinct inputs diverge
	assert.NotEqual(t, digest, sec.HashToken("another-token"))
	assert.NotContains(t, digest, "refresh-token-value")
}

/*
TestPasswordHashing verifies the bcrypt round trip and rejection of a wrong
password.
*/
func TestPasswordHashing(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
	assert.NotEqual(t, "correct horse battery staple", hash)
}
