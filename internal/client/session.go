// Copyright (c) 2026 Authapp. All rights reserved.

package client

import (
	"context"
	"errors"
)

// Session manages the client-side authentication lifecycle: it persists the
// token after login/register, replays it on authenticated calls, and drops
// it the moment the server stops honoring it.
//
// # Concurrency
//
// Session is not safe for concurrent use; the CLI drives it from one
// goroutine.
type Session struct {
	api   *APIClient
	store *StateStore

	user  *UserInfo
	token string
}

// NewSession creates a session manager over an API client and a state store.
func NewSession(api *APIClient, store *StateStore) *Session {
	return &Session{api: api, store: store}
}

/*
Resume attempts to restore a previous session from disk.

Description: Loads the persisted token and verifies it against the server.
ANY failure (missing state, a 401, even a network error) leaves the session
signed out and clears the stale state, so a dead token is never replayed
twice.

Parameters:
  - context: context.Context

Returns:
  - bool: Whether a live session was restored
*/
func (session *Session) Resume(context context.Context) bool {
	state, err := session.store.Load()
	if err != nil || state == nil {
		return false
	}

	user, err := session.api.CurrentUser(context, state.Token)
	if err != nil {
		_ = session.store.Clear()
		return false
	}

	session.user = user
	session.token = state.Token
	_ = session.store.Save(&State{Token: state.Token, User: user})

	return true
}

/*
Register creates an account and persists the resulting session.

Parameters:
  - context: context.Context
  - name, email, password, passwordConfirmation: string

Returns:
  - *UserInfo: The created user
  - error: *APIError or transport errors
*/
func (session *Session) Register(context context.Context, name, email, password, passwordConfirmation string) (*UserInfo, error) {
	user, token, err := session.api.Register(context, name, email, password, passwordConfirmation)
	if err != nil {
		return nil, err
	}

	session.user = user
	session.token = token
	if err := session.store.Save(&State{Token: token, User: user}); err != nil {
		return nil, err
	}

	return user, nil
}

/*
Login authenticates and persists the resulting session.

Parameters:
  - context: context.Context
  - email, password: string

Returns:
  - *UserInfo: The authenticated user
  - error: *APIError or transport errors
*/
func (session *Session) Login(context context.Context, email, password string) (*UserInfo, error) {
	user, token, err := session.api.Login(context, email, password)
	if err != nil {
		return nil, err
	}

	session.user = user
	session.token = token
	if err := session.store.Save(&State{Token: token, User: user}); err != nil {
		return nil, err
	}

	return user, nil
}

/*
Logout ends the session optimistically: local state is dropped first, then
the server-side revocation is attempted. A revocation failure still leaves
the client signed out.

Parameters:
  - context: context.Context

Returns:
  - error: The revocation failure, if any (local state is gone regardless)
*/
func (session *Session) Logout(context context.Context) error {
	token := session.token

	session.user = nil
	session.token = ""
	_ = session.store.Clear()

	if token == "" {
		return nil
	}
	return session.api.Logout(context, token)
}

/*
Current fetches the freshest profile for the signed-in user.

Description: On ANY failure the session deauthenticates, dropping persisted
and in-memory state, because a token the server won't vouch for cannot be
trusted again.

Parameters:
  - context: context.Context

Returns:
  - *UserInfo: The full profile projection
  - error: ErrNotAuthenticated, *APIError or transport errors
*/
func (session *Session) Current(context context.Context) (*UserInfo, error) {
	if session.token == "" {
		return nil, ErrNotAuthenticated
	}

	user, err := session.api.CurrentUser(context, session.token)
	if err != nil {
		session.user = nil
		session.token = ""
		_ = session.store.Clear()
		return nil, err
	}

	session.user = user
	return user, nil
}

// ErrNotAuthenticated is returned by Current when no session is active.
var ErrNotAuthenticated = errors.New("client: not authenticated")

// IsAuthenticated reports whether a token is currently held.
func (session *Session) IsAuthenticated() bool { return session.token != "" }

// User returns the cached user from the last successful call, or nil.
func (session *Session) User() *UserInfo { return session.user }

// Token returns the held bearer token, or "".
func (session *Session) Token() string { return session.token }
