// Copyright (c) 2026 Authapp. All rights reserved.

// Package sec provides cryptographic primitives for the platform.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, bearer
// token generation) from the domain logic. It acts as an Infrastructure
// service used by the auth application layer.
package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Chosen for balance between security and CPU
// utilization during registration spikes.
const (
	argonMemoryKB    uint32 = 64 * 1024
	argonTime        uint32 = 3
	argonParallelism uint8  = 2
	argonSaltLength         = 16
	argonKeyLength   uint32 = 32
)

// HashPassword hashes a plain-text password using argon2id and returns a
// self-describing PHC-formatted string ($argon2id$v=...$m=...,t=...,p=...$salt$hash).
//
// Unlike bcrypt, argon2id has no 72-byte input ceiling, so every accepted
// password length hashes without truncation.
func HashPassword(plainTextPassword string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("auth: failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(plainTextPassword), salt, argonTime, argonMemoryKB, argonParallelism, argonKeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemoryKB,
		argonTime,
		argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version
// in constant time. A malformed hash yields false, never an error or panic.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	salt, expected, memory, timeCost, parallelism, ok := parsePHC(existingHash)
	if !ok {
		return false
	}

	computed := argon2.IDKey([]byte(plainTextPassword), salt, timeCost, memory, parallelism, uint32(len(expected)))
	return subtle.ConstantTimeCompare(computed, expected) == 1
}

// parsePHC decodes a PHC-formatted argon2id hash string.
func parsePHC(encodedHash string) (salt, hash []byte, memory, timeCost uint32, parallelism uint8, ok bool) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, false
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &parallelism); err != nil {
		return nil, nil, 0, 0, 0, false
	}
	if memory == 0 || timeCost == 0 || parallelism == 0 {
		return nil, nil, 0, 0, 0, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return nil, nil, 0, 0, 0, false
	}

	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return nil, nil, 0, 0, 0, false
	}

	return salt, hash, memory, timeCost, parallelism, true
}
