package auth

import (
	"crypto/subtle"
	"errors"
)

// ErrNotConfigured indicates the server-side admin secret is missing.
// This is a deployment problem (500-class), not a caller problem.
var ErrNotConfigured = errors.New("admin secret is not configured")

// ErrInvalidToken indicates the presented credential does not match the
// configured secret (401-class).
var ErrInvalidToken = errors.New("invalid token")

// TokenVerifier validates a presented bearer credential against the
// server-held admin secret
type TokenVerifier struct {
	secret string
}

// NewTokenVerifier creates a verifier for the configured secret. An empty
// secret is allowed at construction; Verify reports it as a configuration
// error so the two failure classes stay distinct.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: secret}
}

// Verify checks the presented token. Comparison is constant-time so the
// check does not leak secret prefixes.
func (v *TokenVerifier) Verify(token string) error {
	if v.secret == "" {
		return ErrNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(v.secret)) != 1 {
		return ErrInvalidToken
	}
	return nil
}
