// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
)

var ErrUnauthorized = errors.New("unauthorized")

// Authorizer decides whether a caller-supplied credential grants access to
// protected operations.
type Authorizer interface {
	Authorize(credential string) error
}

// SharedSecret authorizes callers presenting one static password.
type SharedSecret struct {
	digest [sha256.Size]byte
}

// NewSharedSecret returns an Authorizer for secret. An empty secret
// authorizes nobody.
func NewSharedSecret(secret string) *SharedSecret {
	s := &SharedSecret{}
	if secret != "" {
		s.digest = sha256.Sum256([]byte(secret))
	}
	return s
}

// Authorize compares digests in constant time, so neither the content
// nor the length of the secret leaks through timing.
func (s *SharedSecret) Authorize(credential string) error {
	var zero [sha256.Size]byte
	if s.digest == zero || credential == "" {
		return ErrUnauthorized
	}

	got := sha256.Sum256([]byte(credential))
	if !hmac.Equal(got[:], s.digest[:]) {
		return ErrUnauthorized
	}
	return nil
}

// AuthorizerFunc adapts a plain function to Authorizer.
type AuthorizerFunc func(credential string) error

func (f AuthorizerFunc) Authorize(credential string) error { return f(credential) }
