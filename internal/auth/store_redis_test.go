// Copyright (c) 2026 Authapp. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovacev/authapp/internal/auth"
	"github.com/dkovacev/authapp/internal/platform/dberr"
	"github.com/dkovacev/authapp/pkg/uuid"
)

// newRedisRepo spins up a miniredis instance and a repository over it.
func newRedisRepo(t *testing.T) (*auth.RedisTokenRepository, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return auth.NewRedisTokenRepository(client), server
}

// newToken builds a token record expiring at now+ttl.
func newToken(userID string, ttl time.Duration) *auth.Token {
	return &auth.Token{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: uuid.New(), // any unique string works as a digest here
		Abilities: []string{auth.AbilityAll},
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now(),
	}
}

/*
TestRedisTokenRepository_CreateFind verifies the round trip through the
hash encoding.
*/
func TestRedisTokenRepository_CreateFind(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx := context.Background()

	token := newToken(uuid.New(), auth.TokenTTL)
	require.NoError(t, repo.Create(ctx, token))

	found, err := repo.FindByHash(ctx, token.TokenHash)
	require.NoError(t, err)

	assert.Equal(t, token.ID, found.ID)
	assert.Equal(t, token.UserID, found.UserID)
	assert.Equal(t, token.Abilities, found.Abilities)
	assert.WithinDuration(t, token.ExpiresAt, found.ExpiresAt, time.Second)
}

/*
TestRedisTokenRepository_FindMissing verifies an unknown hash maps to the
store-neutral not-found sentinel.
*/
func TestRedisTokenRepository_FindMissing(t *testing.T) {
	repo, _ := newRedisRepo(t)

	_, err := repo.FindByHash(context.Background(), "no-such-hash")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

/*
TestRedisTokenRepository_ExpiredStillReadable verifies a token past its
expiry is still returned during the grace window, so the issuer can report
it as expired rather than unknown.
*/
func TestRedisTokenRepository_ExpiredStillReadable(t *testing.T) {
	repo, server := newRedisRepo(t)
	ctx := context.Background()

	token := newToken(uuid.New(), time.Minute)
	require.NoError(t, repo.Create(ctx, token))

	// Step past the expiry but stay inside the grace window.
	server.FastForward(2 * time.Minute)

	found, err := repo.FindByHash(ctx, token.TokenHash)
	require.NoError(t, err)
	assert.True(t, found.Expired(found.ExpiresAt.Add(time.Minute)))

	// Once the grace window lapses the record is gone for good.
	server.FastForward(25 * time.Hour)

	_, err = repo.FindByHash(ctx, token.TokenHash)
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

/*
TestRedisTokenRepository_DeleteByHash verifies deletion removes both the
record and its index entry, and is idempotent.
*/
func TestRedisTokenRepository_DeleteByHash(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	token := newToken(userID, auth.TokenTTL)
	require.NoError(t, repo.Create(ctx, token))

	require.NoError(t, repo.DeleteByHash(ctx, token.TokenHash))

	_, err := repo.FindByHash(ctx, token.TokenHash)
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	// Deleting again succeeds.
	assert.NoError(t, repo.DeleteByHash(ctx, token.TokenHash))
}

/*
TestRedisTokenRepository_DeleteAllForUser verifies bulk revocation clears
only the target user's tokens.
*/
func TestRedisTokenRepository_DeleteAllForUser(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx := context.Background()

	victim := uuid.New()
	bystander := uuid.New()

	first := newToken(victim, auth.TokenTTL)
	second := newToken(victim, auth.TokenTTL)
	other := newToken(bystander, auth.TokenTTL)

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, other))

	require.NoError(t, repo.DeleteAllForUser(ctx, victim))

	_, err := repo.FindByHash(ctx, first.TokenHash)
	assert.ErrorIs(t, err, dberr.ErrNotFound)
	_, err = repo.FindByHash(ctx, second.TokenHash)
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	// The other user's token is untouched.
	_, err = repo.FindByHash(ctx, other.TokenHash)
	assert.NoError(t, err)

	// A user with no tokens is a successful no-op.
	assert.NoError(t, repo.DeleteAllForUser(ctx, victim))
}
