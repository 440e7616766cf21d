// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"

	"github.com/macdeesh/patterns/auth"
)

var (
	// ErrUnauthorized: bad or missing credential on a protected operation.
	ErrUnauthorized = auth.ErrUnauthorized

	// ErrNotFound: erase on an absent file with WithStrictErase.
	ErrNotFound = errors.New("records file not found")

	// ErrConflict: the file changed between read and write. Re-run the whole
	// read-modify-write to retry.
	ErrConflict = errors.New("records file changed concurrently")

	// ErrCorruptData: the stored content is not a JSON array.
	ErrCorruptData = errors.New("records file is not a JSON array")

	// ErrUnavailable: the file host failed for any other reason. The write
	// may or may not have landed.
	ErrUnavailable = errors.New("record storage unavailable")

	// ErrInvalidRecord: the record passed to Append is not valid JSON.
	ErrInvalidRecord = errors.New("record is not valid JSON")
)
