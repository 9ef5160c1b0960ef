// Copyright (c) 2026 Authapp. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// TokenTTL is the duration a bearer token remains valid.
	// Long-lived (30 days) to provide a good user experience; revocation is
	// immediate because validity is decided by store lookup.
	TokenTTL = 30 * 24 * time.Hour

	// TokenSecretLength is the byte length of the random bearer secret.
	// 32 bytes gives 256 bits of entropy.
	TokenSecretLength = 32

	// AbilityAll is the single ability granted to every issued token.
	// Fine-grained scopes are not part of this subsystem.
	AbilityAll = "all"

	// NameMinLength and NameMaxLength bound the display name.
	NameMinLength = 2
	NameMaxLength = 255

	// PasswordMinLength is the minimum accepted password length.
	PasswordMinLength = 6
)
