// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package hosttest holds the behaviour every filehost.Host must share.
// Backend packages call Run from their own tests.
package hosttest

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/macdeesh/patterns/filehost"
)

// Run executes the conformance suite. newHost must return an empty host.
func Run(t *testing.T, newHost func(t *testing.T) filehost.Host) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, h filehost.Host)
	}{
		{"ReadMissing", testReadMissing},
		{"CreateAndRead", testCreateAndRead},
		{"CreateOnlyWhenAbsent", testCreateOnlyWhenAbsent},
		{"UpdateWithCurrentVersion", testUpdateWithCurrentVersion},
		{"UpdateWithStaleVersion", testUpdateWithStaleVersion},
		{"UpdateMissingWithVersion", testUpdateMissingWithVersion},
		{"DeleteWithCurrentVersion", testDeleteWithCurrentVersion},
		{"DeleteWithStaleVersion", testDeleteWithStaleVersion},
		{"DeleteMissing", testDeleteMissing},
		{"PathsAreIndependent", testPathsAreIndependent},
		{"ConcurrentWritersOneWinner", testConcurrentWritersOneWinner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newHost(t))
		})
	}
}

const path = "data/answers.json"

func testReadMissing(t *testing.T, h filehost.Host) {
	_, err := h.Read(context.Background(), path)
	require.ErrorIs(t, err, filehost.ErrNotFound)
}

func testCreateAndRead(t *testing.T, h filehost.Host) {
	ctx := context.Background()
	data := []byte(`[{"contact":"@me"}]`)

	version, err := h.Write(ctx, path, data, "")
	require.NoError(t, err)
	require.NotEmpty(t, version)

	obj, err := h.Read(ctx, path)
	require.NoError(t, err)
	require.Equal(t, data, obj.Data)
	require.Equal(t, version, obj.Version)
}

func testCreateOnlyWhenAbsent(t *testing.T, h filehost.Host) {
	ctx := context.Background()

	_, err := h.Write(ctx, path, []byte(`[1]`), "")
	require.NoError(t, err)

	_, err = h.Write(ctx, path, []byte(`[2]`), "")
	require.ErrorIs(t, err, filehost.ErrConflict)

	obj, err := h.Read(ctx, path)
	require.NoError(t, err)
	require.Equal(t, []byte(`[1]`), obj.Data)
}

func testUpdateWithCurrentVersion(t *testing.T, h filehost.Host) {
	ctx := context.Background()

	v1, err := h.Write(ctx, path, []byte(`[1]`), "")
	require.NoError(t, err)

	v2, err := h.Write(ctx, path, []byte(`[1,2]`), v1)
	require.NoError(t, err)
	require.NotEqual(t, v1, v2)

	obj, err := h.Read(ctx, path)
	require.NoError(t, err)
	require.Equal(t, []byte(`[1,2]`), obj.Data)
	require.Equal(t, v2, obj.Version)
}

func testUpdateWithStaleVersion(t *testing.T, h filehost.Host) {
	ctx := context.Background()

	v1, err := h.Write(ctx, path, []byte(`[1]`), "")
	require.NoError(t, err)
	_, err = h.Write(ctx, path, []byte(`[1,2]`), v1)
	require.NoError(t, err)

	_, err = h.Write(ctx, path, []byte(`[1,3]`), v1)
	require.ErrorIs(t, err, filehost.ErrConflict)

	obj, err := h.Read(ctx, path)
	require.NoError(t, err)
	require.Equal(t, []byte(`[1,2]`), obj.Data)
}

func testUpdateMissingWithVersion(t *testing.T, h filehost.Host) {
	ctx := context.Background()

	_, err := h.Write(ctx, path, []byte(`[1]`), filehost.BlobSHA([]byte(`[]`)))
	require.ErrorIs(t, err, filehost.ErrConflict)

	_, err = h.Read(ctx, path)
	require.ErrorIs(t, err, filehost.ErrNotFound)
}

func testDeleteWithCurrentVersion(t *testing.T, h filehost.Host) {
	ctx := context.Background()

	v, err := h.Write(ctx, path, []byte(`[1]`), "")
	require.NoError(t, err)

	require.NoError(t, h.Delete(ctx, path, v))

	_, err = h.Read(ctx, path)
	require.ErrorIs(t, err, filehost.ErrNotFound)
}

func testDeleteWithStaleVersion(t *testing.T, h filehost.Host) {
	ctx := context.Background()

	v1, err := h.Write(ctx, path, []byte(`[1]`), "")
	require.NoError(t, err)
	_, err = h.Write(ctx, path, []byte(`[1,2]`), v1)
	require.NoError(t, err)

	err = h.Delete(ctx, path, v1)
	require.ErrorIs(t, err, filehost.ErrConflict)

	obj, err := h.Read(ctx, path)
	require.NoError(t, err)
	require.Equal(t, []byte(`[1,2]`), obj.Data)
}

func testDeleteMissing(t *testing.T, h filehost.Host) {
	err := h.Delete(context.Background(), path, filehost.BlobSHA([]byte(`[]`)))
	require.ErrorIs(t, err, filehost.ErrNotFound)
}

func testPathsAreIndependent(t *testing.T, h filehost.Host) {
	ctx := context.Background()

	_, err := h.Write(ctx, "a.json", []byte(`["a"]`), "")
	require.NoError(t, err)
	_, err = h.Write(ctx, "b.json", []byte(`["b"]`), "")
	require.NoError(t, err)

	a, err := h.Read(ctx, "a.json")
	require.NoError(t, err)
	require.Equal(t, []byte(`["a"]`), a.Data)

	b, err := h.Read(ctx, "b.json")
	require.NoError(t, err)
	require.Equal(t, []byte(`["b"]`), b.Data)
}

// Every writer holds the same token; only one write may land.
func testConcurrentWritersOneWinner(t *testing.T, h filehost.Host) {
	ctx := context.Background()

	base, err := h.Write(ctx, path, []byte(`[]`), "")
	require.NoError(t, err)

	const writers = 8
	var wins, conflicts atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data := []byte(`[` + string(rune('0'+i)) + `]`)
			_, err := h.Write(ctx, path, data, base)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, filehost.ErrConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected write error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, int32(1), wins.Load())
	require.Equal(t, int32(writers-1), conflicts.Load())
}
