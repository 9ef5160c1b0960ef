// Copyright (c) 2026 Authapp. All rights reserved.

package auth

import (
	"context"

	"github.com/dkovacev/authapp/internal/platform/ctxkey"
)

// WithSession returns a context carrying the authenticated user and the
// plaintext token that proved their identity.
func WithSession(parent context.Context, user *User, token string) context.Context {
	parent = context.WithValue(parent, ctxkey.KeyUser, user)
	return context.WithValue(parent, ctxkey.KeyToken, token)
}

// UserFrom extracts the authenticated user from the context, or nil when
// the request carried no valid session.
func UserFrom(context context.Context) *User {
	user, _ := context.Value(ctxkey.KeyUser).(*User)
	return user
}

// TokenFrom extracts the plaintext session token from the context, or ""
// when the request carried no valid session.
func TokenFrom(context context.Context) string {
	token, _ := context.Value(ctxkey.KeyToken).(string)
	return token
}
