// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"

	"github.com/macdeesh/patterns/auth"
)

// Guarded puts a credential check in front of the read and erase paths.
// Append stays public: anyone finishing the quiz may submit.
type Guarded struct {
	store *Store
	authz auth.Authorizer
}

func NewGuarded(s *Store, authz auth.Authorizer) *Guarded {
	return &Guarded{store: s, authz: authz}
}

func (g *Guarded) Append(ctx context.Context, record json.RawMessage) error {
	return g.store.Append(ctx, record)
}

// ListAll returns ErrUnauthorized without touching the file host when the
// credential is rejected.
func (g *Guarded) ListAll(ctx context.Context, credential string) ([]json.RawMessage, error) {
	if err := g.authz.Authorize(credential); err != nil {
		return nil, ErrUnauthorized
	}
	return g.store.ListAll(ctx)
}

// EraseAll returns ErrUnauthorized without touching the file host when the
// credential is rejected.
func (g *Guarded) EraseAll(ctx context.Context, credential string) error {
	if err := g.authz.Authorize(credential); err != nil {
		return ErrUnauthorized
	}
	return g.store.EraseAll(ctx)
}
