// Copyright (c) 2026 Authapp. All rights reserved.

package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/dkovacev/authapp/internal/auth"
	"github.com/dkovacev/authapp/internal/platform/dberr"
)

// memUserRepo is an in-memory UserRepository for service-level tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*auth.User // keyed by ID

	// createErr, when set, is returned by the next Create call.
	createErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*auth.User)}
}

func (repo *memUserRepo) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.createErr != nil {
		err := repo.createErr
		repo.createErr = nil
		return err
	}

	for _, existing := range repo.users {
		if existing.Email == user.Email {
			return dberr.ErrUniqueViolation
		}
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = time.Now()

	clone := *user
	repo.users[user.ID] = &clone
	return nil
}

func (repo *memUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (repo *memUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, user := range repo.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

// memTokenRepo is an in-memory TokenRepository for service-level tests.
type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*auth.Token // keyed by TokenHash
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]*auth.Token)}
}

func (repo *memTokenRepo) Create(_ context.Context, token *auth.Token) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	clone := *token
	repo.tokens[token.TokenHash] = &clone
	return nil
}

func (repo *memTokenRepo) FindByHash(_ context.Context, tokenHash string) (*auth.Token, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	token, ok := repo.tokens[tokenHash]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *token
	return &clone, nil
}

func (repo *memTokenRepo) DeleteByHash(_ context.Context, tokenHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	delete(repo.tokens, tokenHash)
	return nil
}

func (repo *memTokenRepo) DeleteAllForUser(_ context.Context, userID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for hash, token := range repo.tokens {
		if token.UserID == userID {
			delete(repo.tokens, hash)
		}
	}
	return nil
}

func (repo *memTokenRepo) DeleteExpired(_ context.Context) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	now := time.Now()
	for hash, token := range repo.tokens {
		if token.Expired(now) {
			delete(repo.tokens, hash)
		}
	}
	return nil
}

// count returns the number of live token records for a user.
func (repo *memTokenRepo) count(userID string) int {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	total := 0
	for _, token := range repo.tokens {
		if token.UserID == userID {
			total++
		}
	}
	return total
}

// expire backdates every token for a user so it reads as expired.
func (repo *memTokenRepo) expire(userID string) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, token := range repo.tokens {
		if token.UserID == userID {
			token.ExpiresAt = time.Now().Add(-time.Minute)
		}
	}
}
