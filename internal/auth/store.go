// Copyright (c) 2026 Authapp. All rights reserved.

package auth

import (
	"context"
)

// The credential store is an external collaborator. Both contracts below
// return [dberr.ErrNotFound] for absent rows and [dberr.ErrUniqueViolation]
// for lost uniqueness races, so callers never import a storage driver.

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account.

		Email uniqueness is enforced by the store itself: a concurrent insert
		with the same address surfaces as dberr.ErrUniqueViolation, never as a
		silent overwrite.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: dberr.ErrUniqueViolation or persistence failures
	*/
	Create(context context.Context, user *User) error
}

// # Token Data Access

// TokenRepository defines the data access contract for issued bearer tokens.
type TokenRepository interface {

	/*
		Create persists a newly issued token record.

		Parameters:
		  - context: context.Context
		  - token: *Token

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, token *Token) error

	/*
		FindByHash returns the token record matching the given secret hash.

		Expired records are still returned (until purged) so that validation
		can distinguish an expired token from an unknown one.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *Token: Hydrated entity
		  - error: dberr.ErrNotFound or retrieval failures
	*/
	FindByHash(context context.Context, tokenHash string) (*Token, error)

	/*
		DeleteByHash removes a single token record. Deleting an absent record
		is not an error; revocation is idempotent.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteByHash(context context.Context, tokenHash string) error

	/*
		DeleteAllForUser removes every token owned by the given user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Batch deletion failures
	*/
	DeleteAllForUser(context context.Context, userID string) error

	/*
		DeleteExpired physically removes records whose ExpiresAt is in the
		past. Stores with native TTL expiry may implement this as a no-op.

		Parameters:
		  - context: context.Context

		Returns:
		  - error: Cleanup failures
	*/
	DeleteExpired(context context.Context) error
}
