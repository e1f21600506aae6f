package auth

import (
	"errors"
	"testing"
)

func TestVerify(t *testing.T) {
	v := NewTokenVerifier("s3cret")

	if err := v.Verify("s3cret"); err != nil {
		t.Errorf("Expected matching token to verify, got %v", err)
	}
	if err := v.Verify("wrong"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
	if err := v.Verify(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected empty token to be invalid, got %v", err)
	}
}

func TestVerifyMissingSecret(t *testing.T) {
	v := NewTokenVerifier("")

	// A missing server secret is a configuration error, not an invalid token
	err := v.Verify("anything")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
	if errors.Is(err, ErrInvalidToken) {
		t.Error("Missing secret must not be reported as an invalid token")
	}
}
