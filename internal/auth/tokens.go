// Copyright (c) 2026 Authapp. All rights reserved.

package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dkovacev/authapp/internal/platform/apperr"
	"github.com/dkovacev/authapp/internal/platform/dberr"
	"github.com/dkovacev/authapp/internal/platform/sec"
	"github.com/dkovacev/authapp/pkg/uuid"
)

var (
	// ErrTokenNotFound is returned when a presented secret matches no stored
	// token. The message is identical to ErrTokenExpired so callers on the
	// wire cannot tell the two apart.
	ErrTokenNotFound = &apperr.AppError{
		Code:       "TOKEN_NOT_FOUND",
		Message:    "Unauthenticated",
		HTTPStatus: http.StatusUnauthorized,
	}

	// ErrTokenExpired is returned when a stored token has passed its expiry.
	ErrTokenExpired = &apperr.AppError{
		Code:       "TOKEN_EXPIRED",
		Message:    "Unauthenticated",
		HTTPStatus: http.StatusUnauthorized,
	}
)

// TokenIssuer mints and validates opaque bearer tokens.
//
// Only a SHA-256 digest of each secret is ever persisted; the plaintext
// exists once, in the Issue return value, and is never recoverable from
// the store.
type TokenIssuer struct {
	tokens TokenRepository
	users  UserRepository
}

// NewTokenIssuer creates a new TokenIssuer bound to its repositories.
func NewTokenIssuer(tokens TokenRepository, users UserRepository) *TokenIssuer {
	return &TokenIssuer{tokens: tokens, users: users}
}

/*
Issue mints a fresh opaque token for the given user.

Description: Generates a 256-bit random secret, stores only its digest with
the ttl applied from the current clock, and returns the plaintext secret to
hand to the client.

Parameters:
  - context: context.Context
  - userID: string (Owner of the new token)
  - ttl: time.Duration (Validity window, e.g. TokenTTL)

Returns:
  - string: Plaintext token secret
  - error: Entropy or storage failures
*/
func (issuer *TokenIssuer) Issue(context context.Context, userID string, ttl time.Duration) (string, error) {
	secret, err := sec.GenerateSecureToken(TokenSecretLength)
	if err != nil {
		return "", apperr.Internal(err)
	}

	token := &Token{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: sec.HashToken(secret),
		Abilities: []string{AbilityAll},
		ExpiresAt: time.Now().Add(ttl),
	}

	if err := issuer.tokens.Create(context, token); err != nil {
		return "", apperr.Internal(err)
	}

	return secret, nil
}

/*
Validate resolves an opaque token secret to its owning user.

Description: Hashes the presented secret, looks up the stored record, and
rejects it when absent or expired. An expired record is purged on the way
out so repeated presentation converges to not-found.

Parameters:
  - context: context.Context
  - secret: string (Plaintext token from the Authorization header)

Returns:
  - *User: Owner of the token
  - *Token: The validated token record
  - error: ErrTokenNotFound, ErrTokenExpired or storage failures
*/
func (issuer *TokenIssuer) Validate(context context.Context, secret string) (*User, *Token, error) {
	token, err := issuer.tokens.FindByHash(context, sec.HashToken(secret))
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, nil, ErrTokenNotFound
		}
		return nil, nil, apperr.Internal(err)
	}

	if token.Expired(time.Now()) {
		// Lazy purge; deletion failures don't change the outcome.
		_ = issuer.tokens.DeleteByHash(context, token.TokenHash)
		return nil, nil, ErrTokenExpired
	}

	user, err := issuer.users.FindByID(context, token.UserID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			// Owner was deleted out from under the token.
			return nil, nil, ErrTokenNotFound
		}
		return nil, nil, apperr.Internal(err)
	}

	return user, token, nil
}

/*
Revoke invalidates a single token by its plaintext secret. Idempotent:
revoking an unknown or already revoked token succeeds.

Parameters:
  - context: context.Context
  - secret: string

Returns:
  - error: Storage failures
*/
func (issuer *TokenIssuer) Revoke(context context.Context, secret string) error {
	err := issuer.tokens.DeleteByHash(context, sec.HashToken(secret))
	if err != nil && !errors.Is(err, dberr.ErrNotFound) {
		return apperr.Internal(err)
	}
	return nil
}

/*
RevokeAll invalidates every token belonging to a user. Idempotent: a user
with no tokens is a successful no-op.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Storage failures
*/
func (issuer *TokenIssuer) RevokeAll(context context.Context, userID string) error {
	if err := issuer.tokens.DeleteAllForUser(context, userID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
