// Copyright (c) 2026 Authapp. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a cryptographically random opaque token of
// byteLength random bytes, hex-encoded (so the string is twice as long).
//
// With 32 bytes (256 bits of entropy) collisions are negligible; the value
// carries no decodable structure and is only meaningful via store lookup.
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a bearer token.
//
// Only the digest is ever persisted. The plaintext token is the credential
// itself and, like a password, must never be stored or logged.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
