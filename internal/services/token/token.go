// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package token mints and verifies the signed session tokens that gate the
// protected API surface. Tokens are self-contained; nothing is stored
// server-side.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fomag/convocatoria-backend/internal/config"
)

// ErrInvalidToken covers every verification failure: bad signature, malformed
// token, wrong algorithm, or expiry. Callers must not learn which check
// failed.
var ErrInvalidToken = errors.New("token invalido")

// Service signs and verifies session tokens for provider NITs.
type Service struct {
	secret   []byte
	duration time.Duration
}

// NewService creates the token service. The signing secret is validated at
// startup; a missing or short secret is a fatal configuration error.
func NewService(cfg *config.AuthConfig) (*Service, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, config.ErrJWTSecretTooShort
	}
	return &Service{
		secret:   []byte(cfg.JWTSecret),
		duration: cfg.TokenDuration,
	}, nil
}

// Mint produces a signed token with subject nit, valid from now until
// now+duration.
func (s *Service) Mint(nit string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   nit,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the subject NIT. Any failure
// returns ErrInvalidToken.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
