// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package filehost defines the backing file-host contract used by the record
store.

# Contract

A Host stores whole files addressed by path. Every read returns a version
token, and every mutation is conditioned on one:

	obj, err := host.Read(ctx, "data/answers.json")
	newVersion, err := host.Write(ctx, "data/answers.json", data, obj.Version)
	err = host.Delete(ctx, "data/answers.json", newVersion)

Write with an empty version is create-only. A stale version yields
ErrConflict; a missing file yields ErrNotFound.

# Implementations

  - githubhost: GitHub Contents API (version = blob sha)
  - sqlhost: PostgreSQL or SQLite table (version = BlobSHA of content)
  - bolthost: local bbolt file (version = BlobSHA of content)
  - memhost: in-process map, for tests and local runs

# Version Tokens

BlobSHA reproduces git's blob hash so every backend reports the same token
for the same bytes.
*/
package filehost
