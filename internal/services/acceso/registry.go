// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package acceso

import (
	"sync"
	"time"
)

// cleanupInterval is how often the registries sweep expired entries so
// abandoned recovery attempts cannot grow the maps without bound.
const cleanupInterval = time.Minute

// challenge is the server-side snapshot of one open recovery challenge. The
// profile values are captured at challenge time and never re-read.
type challenge struct { //nolint:govet // fieldalignment not critical
	NIT           string
	Representante string
	Correo        string
	Celular       string
	CorreoAdmin   string
	ExpiresAt     time.Time
}

// challengeRegistry is a process-wide expiring store of open challenges.
// Expired entries are rejected on lookup and swept in the background.
type challengeRegistry struct {
	mu         sync.Mutex
	challenges map[string]*challenge
}

func newChallengeRegistry() *challengeRegistry {
	r := &challengeRegistry{
		challenges: make(map[string]*challenge),
	}
	go r.cleanup()
	return r
}

func (r *challengeRegistry) put(id string, c *challenge) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.challenges[id] = c
}

// get returns the challenge if present and not expired. Expired entries are
// removed on the spot.
func (r *challengeRegistry) get(id string) (*challenge, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.challenges[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(c.ExpiresAt) {
		delete(r.challenges, id)
		return nil, false
	}
	return c, true
}

// remove deletes a challenge after a successful validation so it cannot be
// answered twice.
func (r *challengeRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.challenges, id)
}

func (r *challengeRegistry) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for id, c := range r.challenges {
			if now.After(c.ExpiresAt) {
				delete(r.challenges, id)
			}
		}
		r.mu.Unlock()
	}
}

type resetEntry struct {
	nit       string
	expiresAt time.Time
}

// resetTokenRegistry is a process-wide store of single-use reset tokens.
// consume removes the token atomically so a concurrent second use always
// fails; peek leaves it in place for the profile-update flow.
type resetTokenRegistry struct {
	mu     sync.Mutex
	tokens map[string]resetEntry
}

func newResetTokenRegistry() *resetTokenRegistry {
	r := &resetTokenRegistry{
		tokens: make(map[string]resetEntry),
	}
	go r.cleanup()
	return r
}

func (r *resetTokenRegistry) put(token, nit string, ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = resetEntry{nit: nit, expiresAt: time.Now().Add(ttl)}
}

// consume removes the token and returns its NIT. A consumed, unknown, or
// expired token reports false.
func (r *resetTokenRegistry) consume(token string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.tokens[token]
	if !ok {
		return "", false
	}
	delete(r.tokens, token)

	if time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.nit, true
}

// peek returns the NIT without consuming the token.
func (r *resetTokenRegistry) peek(token string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.tokens[token]
	if !ok {
		return "", false
	}
	if time.Now().After(entry.expiresAt) {
		delete(r.tokens, token)
		return "", false
	}
	return entry.nit, true
}

func (r *resetTokenRegistry) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for token, entry := range r.tokens {
			if now.After(entry.expiresAt) {
				delete(r.tokens, token)
			}
		}
		r.mu.Unlock()
	}
}
