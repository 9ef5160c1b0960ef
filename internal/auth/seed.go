// Copyright (c) 2026 Authapp. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dkovacev/authapp/internal/platform/dberr"
	"github.com/dkovacev/authapp/internal/platform/sec"
	"github.com/dkovacev/authapp/pkg/uuid"
)

// demoUser describes one development account created by SeedDemoUsers.
type demoUser struct {
	name     string
	email    string
	password string
}

// demoUsers are the well-known development accounts. Both are seeded with a
// verified email so the profile projection has a non-null
// email_verified_at to exercise.
var demoUsers = []demoUser{
	{name: "Administrator", email: "admin@test.com", password: "admin123"},
	{name: "Test User", email: "user@test.com", password: "user123"},
}

/*
SeedDemoUsers inserts the well-known development accounts if they don't
already exist. Safe to run on every startup; existing accounts are skipped.

Parameters:
  - context: context.Context
  - users: UserRepository
  - logger: *slog.Logger

Returns:
  - error: Hashing or storage failures
*/
func SeedDemoUsers(context context.Context, users UserRepository, logger *slog.Logger) error {
	now := time.Now()

	for _, demo := range demoUsers {
		if _, err := users.FindByEmail(context, demo.email); err == nil {
			continue
		} else if !errors.Is(err, dberr.ErrNotFound) {
			return fmt.Errorf("seed_demo_users_lookup_failed: %w", err)
		}

		passwordHash, err := sec.HashPassword(demo.password)
		if err != nil {
			return fmt.Errorf("seed_demo_users_hash_failed: %w", err)
		}

		user := &User{
			ID:              uuid.New(),
			Name:            demo.name,
			Email:           demo.email,
			PasswordHash:    passwordHash,
			EmailVerifiedAt: &now,
		}

		if err := users.Create(context, user); err != nil {
			// Tolerate a concurrent instance seeding the same account.
			if errors.Is(err, dberr.ErrUniqueViolation) {
				continue
			}
			return fmt.Errorf("seed_demo_users_create_failed: %w", err)
		}

		logger.InfoContext(context, "demo_user_seeded", slog.String("email", demo.email))
	}

	return nil
}
