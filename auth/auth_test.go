// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"testing"
)

func TestSharedSecret(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		credential string
		wantErr    bool
	}{
		{"matching credential", "karim", "karim", false},
		{"wrong credential", "karim", "karin", true},
		{"prefix of secret", "karim", "kar", true},
		{"secret plus suffix", "karim", "karim2", true},
		{"case differs", "karim", "Karim", true},
		{"empty credential", "karim", "", true},
		{"empty secret rejects everything", "", "", true},
		{"empty secret rejects any credential", "", "anything", true},
		{"unicode secret", "pässwörd", "pässwörd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSharedSecret(tt.secret).Authorize(tt.credential)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Authorize(%q) error = %v, wantErr %v", tt.credential, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnauthorized) {
				t.Errorf("Authorize() error = %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestSharedSecret_Deterministic(t *testing.T) {
	a := NewSharedSecret("karim")
	for i := 0; i < 10; i++ {
		if err := a.Authorize("karim"); err != nil {
			t.Fatalf("Authorize() call %d failed: %v", i, err)
		}
	}
}

func TestAuthorizerFunc(t *testing.T) {
	calls := 0
	var a Authorizer = AuthorizerFunc(func(credential string) error {
		calls++
		if credential != "token" {
			return ErrUnauthorized
		}
		return nil
	})

	if err := a.Authorize("token"); err != nil {
		t.Errorf("Expected success, got %v", err)
	}
	if err := a.Authorize("nope"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
}
