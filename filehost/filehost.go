// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filehost

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strconv"
)

var (
	// ErrNotFound is returned when no file exists at the requested path.
	ErrNotFound = errors.New("filehost: file not found")

	// ErrConflict is returned when a conditional write or delete is rejected
	// because the supplied version no longer matches the stored file.
	ErrConflict = errors.New("filehost: version mismatch")
)

// Object is a file's content together with its version token.
type Object struct {
	Data    []byte
	Version string
}

// Host is a file-hosting service offering conditional writes.
type Host interface {
	// Read returns the file at path, or ErrNotFound.
	Read(ctx context.Context, path string) (Object, error)

	// Write stores data at path only if the current version equals version.
	// An empty version means create the file only if it does not exist.
	// Returns the new version, or ErrConflict on mismatch.
	Write(ctx context.Context, path string, data []byte, version string) (string, error)

	// Delete removes the file at path only if its version equals version.
	// Returns ErrNotFound if there is nothing to delete and ErrConflict on
	// a version mismatch.
	Delete(ctx context.Context, path string, version string) error
}

// BlobSHA computes the git blob hash of data, the same token GitHub reports
// as a file's sha. Hosts without a native version use it so tokens agree
// across backends.
func BlobSHA(data []byte) string {
	h := sha1.New()
	h.Write([]byte("blob " + strconv.Itoa(len(data)) + "\x00"))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
