// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package githubhost stores hosted files in a GitHub repository.

# Setup

	host, err := githubhost.New(ctx, githubhost.Config{
		Token:  os.Getenv("GITHUB_TOKEN"),
		Owner:  "macdeesh",
		Repo:   "Patterns",
		Branch: "main",
	})

The token is sent as an OAuth2 bearer token. It needs contents read/write
permission on the repository.

# Versions and Commits

Every file read returns the blob sha as its version. Writes are commits on
the configured branch:

  - create (no sha): "Add new answer at <RFC3339 timestamp>"
  - update (sha):    same message, rejected by GitHub if the sha is stale
  - delete (sha):    "Erase saved answers"

409 and 422 responses map to filehost.ErrConflict; 404 on read or delete
maps to filehost.ErrNotFound. Everything else (auth failures, rate limits,
network errors) is returned wrapped.

# Limits

The Contents API only returns inline content for files up to 1 MB. Larger
files fail to decode and surface as a read error.
*/
package githubhost
