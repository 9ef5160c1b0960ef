// Copyright (c) 2026 Authapp. All rights reserved.

/*
Package auth implements the credential issuance and session-validation core.

It defines the domain entities (User, Token) and the logic for registration,
login, logout, and session resolution via opaque bearer tokens.

# Architecture

  - Service: Orchestrates register/login/logout/who-am-i (the session controller).
  - TokenIssuer: Mints, validates, and revokes store-backed bearer tokens.
  - Repositories: Abstracted contracts for the credential store (Postgres or Redis).

This layer is the "Truth" of the system: entities defined here encapsulate all
business rules related to user identity.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	// EmailVerifiedAt is nil until the address is confirmed. Verification
	// workflows are out of scope; the field is carried for the profile
	// projection and demo seeding.
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Token represents an issued bearer credential.
//
// Only the SHA-256 digest of the opaque secret is kept; the plaintext is
// returned to the caller exactly once at issuance and cannot be recovered.
type Token struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the bearer secret. Omitted for security.
	Abilities []string  `json:"abilities"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the token's TTL has elapsed at the given instant.
func (t *Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// # Public Projections

// UserSummary is the reduced projection returned by register and login.
type UserSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserProfile is the full public projection returned by who-am-i. It adds
// the verification and update timestamps that [UserSummary] omits; the two
// shapes are deliberately asymmetric and must stay that way.
type UserProfile struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Summary returns the projection used in register/login responses.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Profile returns the full public projection. The password hash is never
// part of any projection.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		EmailVerifiedAt: u.EmailVerifiedAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName                 = "name"
	FieldEmail                = "email"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"
	FieldToken                = "token"
	FieldUser                 = "user"
	FieldMessage              = "message"
)
