// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package password wraps bcrypt hashing for provider claves.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the cost factor for bcrypt hashing.
const bcryptCost = 10

// Hasher hashes and verifies claves with salted bcrypt.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash returns the salted bcrypt hash of a plaintext clave.
func (h *Hasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash clave: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plain matches the stored hash.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
