// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"
)

var retryBackoff = 25 * time.Millisecond

// RetryConflicts calls fn up to attempts times, retrying only on
// ErrConflict. A conflicting write was rejected outright, so running the
// full read-modify-write again cannot duplicate anything. Any other error,
// ErrUnavailable included, is returned at once: whether that write landed
// is unknown.
func RetryConflicts(ctx context.Context, attempts int, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			// Spread out writers that collided on the same version
			wait := time.Duration(i) * retryBackoff
			if retryBackoff > 0 {
				wait += rand.N(retryBackoff)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		err = fn(ctx)
		if !errors.Is(err, ErrConflict) {
			return err
		}
		slog.Debug("write conflicted", "attempt", i+1, "of", attempts)
	}
	return err
}
