// Copyright (c) 2026 Authapp. All rights reserved.

package auth

import (
	"context"
	"errors"

	"github.com/dkovacev/authapp/internal/platform/apperr"
	"github.com/dkovacev/authapp/internal/platform/dberr"
	"github.com/dkovacev/authapp/internal/platform/sec"
	"github.com/dkovacev/authapp/internal/platform/validate"
	"github.com/dkovacev/authapp/pkg/uuid"
)

// ErrInvalidCredentials is returned for every login failure, whether the
// email is unknown or the password is wrong. A single shared error keeps
// the two cases indistinguishable to callers.
var ErrInvalidCredentials = apperr.Unauthorized("Invalid login credentials")

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// LoginInput carries the fields of a login request.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthSession pairs an authenticated user with the plaintext token secret
// minted for them. The secret only exists here; the store keeps a digest.
type AuthSession struct {
	User  *User
	Token string
}

// Service implements registration, login, logout and identity lookup on top
// of the credential store and the token issuer.
type Service struct {
	users  UserRepository
	issuer *TokenIssuer

	// revokeOnLogin controls whether a successful login invalidates all of
	// the user's previously issued tokens (single-session semantics).
	revokeOnLogin bool
}

// NewService creates a new auth Service.
func NewService(users UserRepository, issuer *TokenIssuer, revokeOnLogin bool) *Service {
	return &Service{
		users:         users,
		issuer:        issuer,
		revokeOnLogin: revokeOnLogin,
	}
}

/*
Register creates a new user account and signs it in.

Description: Validates the input shape, checks email uniqueness, hashes the
password, persists the account and issues a session token. Validation runs
before any write, so a 422 guarantees nothing changed.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *AuthSession: The new user plus their session token
  - error: VALIDATION_ERROR (field details) or INTERNAL_ERROR
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*AuthSession, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldName, input.Name).
		MinLen(FieldName, input.Name, NameMinLength).
		MaxLen(FieldName, input.Name, NameMaxLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLength).
		Confirmed(FieldPassword, input.Password, input.PasswordConfirmation)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.users.FindByEmail(context, input.Email); err == nil {
		return nil, validate.FieldFailure(FieldEmail, "A user with this email already exists")
	} else if !errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	if err := service.users.Create(context, user); err != nil {
		// A lost uniqueness race reads the same as the pre-check failing.
		if errors.Is(err, dberr.ErrUniqueViolation) {
			return nil, validate.FieldFailure(FieldEmail, "A user with this email already exists")
		}
		return nil, apperr.Internal(err)
	}

	secret, err := service.issuer.Issue(context, user.ID, TokenTTL)
	if err != nil {
		return nil, err
	}

	return &AuthSession{User: user, Token: secret}, nil
}

/*
Login authenticates an email/password pair and issues a session token.

Description: Unknown email and wrong password both return
ErrInvalidCredentials. When revoke-on-login is enabled, every previously
issued token for the user is invalidated before the new one is minted.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthSession: The authenticated user plus their new session token
  - error: VALIDATION_ERROR, ErrInvalidCredentials or INTERNAL_ERROR
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthSession, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByEmail(context, input.Email)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.Internal(err)
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if service.revokeOnLogin {
		if err := service.issuer.RevokeAll(context, user.ID); err != nil {
			return nil, err
		}
	}

	secret, err := service.issuer.Issue(context, user.ID, TokenTTL)
	if err != nil {
		return nil, err
	}

	return &AuthSession{User: user, Token: secret}, nil
}

/*
Logout revokes the presented token. Idempotent: an unknown or already
revoked token still logs out successfully.

Parameters:
  - context: context.Context
  - secret: string (Plaintext token from the Authorization header)

Returns:
  - error: Storage failures
*/
func (service *Service) Logout(context context.Context, secret string) error {
	return service.issuer.Revoke(context, secret)
}

/*
WhoAmI resolves the presented token to its owning user.

Parameters:
  - context: context.Context
  - secret: string

Returns:
  - *User: The authenticated user
  - *Token: The validated token record
  - error: ErrTokenNotFound, ErrTokenExpired or storage failures
*/
func (service *Service) WhoAmI(context context.Context, secret string) (*User, *Token, error) {
	return service.issuer.Validate(context, secret)
}
