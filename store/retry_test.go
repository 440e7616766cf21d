// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fastRetries(t *testing.T) {
	t.Helper()
	old := retryBackoff
	retryBackoff = time.Millisecond
	t.Cleanup(func() { retryBackoff = old })
}

func TestRetryConflicts(t *testing.T) {
	fastRetries(t)
	conflict := fmt.Errorf("append: %w", ErrConflict)

	tests := []struct {
		name      string
		attempts  int
		results   []error
		wantCalls int
		wantErr   error
	}{
		{"success first try", 3, []error{nil}, 1, nil},
		{"success after conflicts", 3, []error{conflict, conflict, nil}, 3, nil},
		{"conflicts exhaust attempts", 3, []error{conflict, conflict, conflict}, 3, ErrConflict},
		{"unavailable is not retried", 3, []error{ErrUnavailable}, 1, ErrUnavailable},
		{"corrupt is not retried", 3, []error{conflict, ErrCorruptData}, 2, ErrCorruptData},
		{"zero attempts means one", 0, []error{conflict}, 1, ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryConflicts(context.Background(), tt.attempts, func(ctx context.Context) error {
				err := tt.results[calls]
				calls++
				return err
			})

			require.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRetryConflicts_StopsOnCanceledContext(t *testing.T) {
	fastRetries(t)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := RetryConflicts(ctx, 5, func(ctx context.Context) error {
		calls++
		cancel()
		return ErrConflict
	})

	require.True(t, errors.Is(err, context.Canceled))
	require.Equal(t, 1, calls)
}
