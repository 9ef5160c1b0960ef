// Copyright (c) 2026 Authapp. All rights reserved.

// PostgreSQL implementations of the credential store contracts.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are classified by
// [dberr.Classify] into store-neutral sentinels, so neither the service nor
// the token issuer ever sees a driver error type.

package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkovacev/authapp/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: Initializes timestamps if not provided. A duplicate email is
rejected by the unique constraint and surfaces as dberr.ErrUniqueViolation.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: dberr.ErrUniqueViolation or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, name, email, passwordhash, emailverifiedat, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.EmailVerifiedAt,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return dberr.Classify(err, "postgres_user_repo_create_failed")
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `
		SELECT id, name, email, passwordhash, emailverifiedat, createdat, updatedat
		FROM users.account
		WHERE email = $1`

	return repository.scanUser(context, query, email)
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT id, name, email, passwordhash, emailverifiedat, createdat, updatedat
		FROM users.account
		WHERE id = $1`

	return repository.scanUser(context, query, id)
}

// scanUser runs a single-row account query and hydrates the entity.
func (repository *PostgresUserRepository) scanUser(context context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.EmailVerifiedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Classify(err, "postgres_user_repo_find_failed")
	}

	return user, nil
}

// # Token Repository

// PostgresTokenRepository implements the TokenRepository interface.
type PostgresTokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository creates a new PostgreSQL implementation of TokenRepository.
func NewTokenRepository(pool *pgxpool.Pool) *PostgresTokenRepository {
	return &PostgresTokenRepository{pool: pool}
}

/*
Create persists a new token record into the users.token table.

Parameters:
  - context: context.Context
  - token: *Token

Returns:
  - error: Storage failures
*/
func (repository *PostgresTokenRepository) Create(context context.Context, token *Token) error {
	const query = `
		INSERT INTO users.token (
			id, userid, tokenhash, abilities, expiresat, createdat
		) VALUES ($1, $2, $3, $4, $5, $6)`

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.Abilities,
		token.ExpiresAt,
		token.CreatedAt,
	)

	return dberr.Classify(err, "postgres_token_repo_create_failed")
}

/*
FindByHash retrieves a token record by its unique secret hash.

Description: Deliberately does NOT filter on expiry; the issuer inspects
ExpiresAt so it can report expiry as a distinct failure.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Token: Hydrated token entity
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *PostgresTokenRepository) FindByHash(context context.Context, tokenHash string) (*Token, error) {
	const query = `
		SELECT id, userid, tokenhash, abilities, expiresat, createdat
		FROM users.token
		WHERE tokenhash = $1`

	token := &Token{}
	err := repository.pool.QueryRow(context, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.Abilities,
		&token.ExpiresAt,
		&token.CreatedAt,
	)

	if err != nil {
		return nil, dberr.Classify(err, "postgres_token_repo_find_failed")
	}

	return token, nil
}

/*
DeleteByHash removes a single token record. Idempotent.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *PostgresTokenRepository) DeleteByHash(context context.Context, tokenHash string) error {
	const query = "DELETE FROM users.token WHERE tokenhash = $1"
	_, err := repository.pool.Exec(context, query, tokenHash)
	return dberr.Classify(err, "postgres_token_repo_delete_failed")
}

/*
DeleteAllForUser removes every token owned by the given user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Batch deletion failures
*/
func (repository *PostgresTokenRepository) DeleteAllForUser(context context.Context, userID string) error {
	const query = "DELETE FROM users.token WHERE userid = $1"
	_, err := repository.pool.Exec(context, query, userID)
	return dberr.Classify(err, "postgres_token_repo_delete_all_failed")
}

/*
DeleteExpired permanently removes all tokens that have passed their expiration.

Parameters:
  - context: context.Context

Returns:
  - error: Cleanup failures
*/
func (repository *PostgresTokenRepository) DeleteExpired(context context.Context) error {
	const query = "DELETE FROM users.token WHERE expiresat <= NOW()"
	_, err := repository.pool.Exec(context, query)
	return dberr.Classify(err, "postgres_token_repo_delete_expired_failed")
}
