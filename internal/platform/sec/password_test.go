// Copyright (c) 2026 Authapp. All rights reserved.

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovacev/authapp/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies correct passwords of various lengths
verify against their own hash.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"minimum_length", "secr3t"},
		{"typical", "correct horse battery staple"},
		{"72_chars", strings.Repeat("a", 72)},
		{"255_chars", strings.Repeat("x", 255)},
		{"unicode", "pässwörd-ünïcødé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := sec.HashPassword(tt.password)
			require.NoError(t, err)

			assert.True(t, sec.CheckPasswordHash(tt.password, hash))
		})
	}
}

/*
TestHashPassword_WrongPassword verifies a wrong password never matches.
*/
func TestHashPassword_WrongPassword(t *testing.T) {
	hash, err := sec.HashPassword("original-password")
	require.NoError(t, err)

	assert.False(t, sec.CheckPasswordHash("other-password", hash))
	assert.False(t, sec.CheckPasswordHash("", hash))
	assert.False(t, sec.CheckPasswordHash("original-password ", hash))
}

/*
TestHashPassword_Salted verifies two hashes of the same password differ.
*/
func TestHashPassword_Salted(t *testing.T) {
	first, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	second, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	// Both still verify.
	assert.True(t, sec.CheckPasswordHash("same-password", first))
	assert.True(t, sec.CheckPasswordHash("same-password", second))
}

/*
TestHashPassword_Format verifies the PHC string shape so stored hashes stay
portable.
*/
func TestHashPassword_Format(t *testing.T) {
	hash, err := sec.HashPassword("any-password")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	// $argon2id$v=...$m=...,t=...,p=...$<salt>$<hash>
	assert.Len(t, strings.Split(hash, "$"), 6)
}

/*
TestCheckPasswordHash_Malformed verifies malformed or corrupted hashes fail
verification instead of erroring or panicking.
*/
func TestCheckPasswordHash_Malformed(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"garbage", "not-a-hash"},
		{"wrong_algorithm", "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"truncated", "$argon2id$v=19$m=65536,t=3,p=2"},
		{"bad_base64", "$argon2id$v=19$m=65536,t=3,p=2$!!!$???"},
		{"bad_params", "$argon2id$v=19$m=abc,t=3,p=2$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, sec.CheckPasswordHash("any-password", tt.hash))
		})
	}
}
