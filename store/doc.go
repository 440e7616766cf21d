// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store keeps quiz submissions as an append-only JSON array in a
single hosted file.

# Operations

	s := store.New(host, "data/answers.json")

	err := s.Append(ctx, json.RawMessage(`{"contact":"@me","compatibility":80}`))
	records, err := s.ListAll(ctx)
	err = s.EraseAll(ctx)

Records are opaque JSON values. They are stored compacted inside a
pretty-printed array and ListAll returns each one in compact form, so a
record read back equals the compact encoding of what was appended.

# Optimistic Concurrency

There is no local cache and no in-process lock. Append reads the file and
its version token, appends in memory, and writes back conditioned on that
token (create-only when the file was absent). If another writer got there
first the host rejects the write and Append returns ErrConflict. Two
appends racing on one version can never both land.

Append never retries by itself. Callers that want to retry wrap it:

	err := store.RetryConflicts(ctx, 3, func(ctx context.Context) error {
		return s.Append(ctx, record)
	})

RetryConflicts reruns only on ErrConflict. ErrUnavailable is not retried
because the write may have landed and a second attempt would duplicate it.

# Access Control

Guarded wraps a Store with an auth.Authorizer. Append is public; ListAll
and EraseAll take a credential and return ErrUnauthorized, with no call to
the file host, when it is rejected.

# Errors

	ErrUnauthorized  credential rejected
	ErrNotFound      EraseAll on a missing file (WithStrictErase only)
	ErrConflict      file changed since it was read
	ErrCorruptData   file content is not a JSON array
	ErrUnavailable   file host failure
	ErrInvalidRecord record is not valid JSON

EraseAll on a missing file succeeds as a no-op by default.
*/
package store
