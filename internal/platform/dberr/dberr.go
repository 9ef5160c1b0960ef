// Copyright (c) 2026 Authapp. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// storage-layer sentinel errors.
//
// Repositories call [Classify] on every pgx error so that service code can
// branch on [ErrNotFound] or [ErrUniqueViolation] without importing pgx.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a queried row doesn't exist.
	ErrNotFound = errors.New("dberr: row not found")

	// ErrUniqueViolation is returned when an insert loses a race against a
	// unique constraint (e.g. a concurrent registration with the same email).
	ErrUniqueViolation = errors.New("dberr: unique_violation")
)

// Classify inspects a database error and maps it onto one of the package
// sentinels, wrapping anything unrecognized with the failed action for context.
func Classify(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %s", ErrUniqueViolation, pgError.ConstraintName)
	}

	return fmt.Errorf("%s: %w", action, err)
}
