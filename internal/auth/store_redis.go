// Copyright (c) 2026 Authapp. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dkovacev/authapp/internal/platform/constants"
	"github.com/dkovacev/authapp/internal/platform/dberr"
)

// tokenExpiryGrace keeps records readable past their ExpiresAt so expired
// tokens can be reported as expired instead of simply absent.
const tokenExpiryGrace = 24 * time.Hour

// RedisTokenRepository implements the TokenRepository interface on Redis.
//
// Each token lives in a hash at constants.RedisPrefixToken + tokenHash, and a
// per-user set at constants.RedisPrefixUserTokens + userID indexes the hashes
// for bulk revocation.
type RedisTokenRepository struct {
	client *redis.Client
}

// NewRedisTokenRepository creates a new Redis implementation of TokenRepository.
func NewRedisTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{client: client}
}

/*
Create persists a new token record and indexes it under its owner.

Parameters:
  - context: context.Context
  - token: *Token

Returns:
  - error: Storage failures
*/
func (repository *RedisTokenRepository) Create(context context.Context, token *Token) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	key := constants.RedisPrefixToken + token.TokenHash
	indexKey := constants.RedisPrefixUserTokens + token.UserID
	retention := time.Until(token.ExpiresAt) + tokenExpiryGrace

	pipe := repository.client.TxPipeline()
	pipe.HSet(context, key, map[string]any{
		"id":        token.ID,
		"userid":    token.UserID,
		"abilities": strings.Join(token.Abilities, ","),
		"expiresat": token.ExpiresAt.Format(time.RFC3339Nano),
		"createdat": token.CreatedAt.Format(time.RFC3339Nano),
	})
	pipe.Expire(context, key, retention)
	pipe.SAdd(context, indexKey, token.TokenHash)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_token_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByHash retrieves a token record by its unique secret hash.

Description: Records persist for a grace window past their expiry, so a
recently expired token is still returned here for the issuer to classify.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Token: Hydrated token entity
  - error: dberr.ErrNotFound or connectivity errors
*/
func (repository *RedisTokenRepository) FindByHash(context context.Context, tokenHash string) (*Token, error) {
	key := constants.RedisPrefixToken + tokenHash

	fields, err := repository.client.HGetAll(context, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_token_repo_find_failed: %w", err)
	}
	if len(fields) == 0 {
		return nil, dberr.ErrNotFound
	}

	expiresAt, err := time.Parse(time.RFC3339Nano, fields["expiresat"])
	if err != nil {
		return nil, fmt.Errorf("redis_token_repo_corrupt_record: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields["createdat"])
	if err != nil {
		return nil, fmt.Errorf("redis_token_repo_corrupt_record: %w", err)
	}

	return &Token{
		ID:        fields["id"],
		UserID:    fields["userid"],
		TokenHash: tokenHash,
		Abilities: strings.Split(fields["abilities"], ","),
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}, nil
}

/*
DeleteByHash removes a single token record and its index entry. Idempotent.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisTokenRepository) DeleteByHash(context context.Context, tokenHash string) error {
	key := constants.RedisPrefixToken + tokenHash

	userID, err := repository.client.HGet(context, key, "userid").Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis_token_repo_delete_failed: %w", err)
	}

	pipe := repository.client.TxPipeline()
	pipe.Del(context, key)
	pipe.SRem(context, constants.RedisPrefixUserTokens+userID, tokenHash)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_token_repo_delete_failed: %w", err)
	}

	return nil
}

/*
DeleteAllForUser removes every token owned by the given user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Batch deletion failures
*/
func (repository *RedisTokenRepository) DeleteAllForUser(context context.Context, userID string) error {
	indexKey := constants.RedisPrefixUserTokens + userID

	hashes, err := repository.client.SMembers(context, indexKey).Result()
	if err != nil {
		return fmt.Errorf("redis_token_repo_delete_all_failed: %w", err)
	}

	pipe := repository.client.TxPipeline()
	for _, hash := range hashes {
		pipe.Del(context, constants.RedisPrefixToken+hash)
	}
	pipe.Del(context, indexKey)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_token_repo_delete_all_failed: %w", err)
	}

	return nil
}

/*
DeleteExpired is a no-op: Redis key TTLs reclaim expired records on their own
once the grace window lapses.

Parameters:
  - context: context.Context

Returns:
  - error: Always nil
*/
func (repository *RedisTokenRepository) DeleteExpired(context.Context) error {
	return nil
}
