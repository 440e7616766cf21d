// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - Backend: github, postgres, sqlite, bolt or memory (default: github)
  - FilePath: Answers file inside the backend (default: data/answers.json)
  - DatabaseURL: Connection string for postgres/sqlite
  - BoltPath: Bolt database file (default: data/patterns.db)
  - GitHubToken, GitHubOwner, GitHubRepo, GitHubBranch, GitHubAPIURL
  - CommitterName, CommitterEmail: Commit identity (optional)
  - AdminPassword: Shared secret for listing and erasing (required)
  - SubmitAttempts: Tries per submission when writes conflict (default: 3)
  - StrictErase: Erasing a missing file is a 404 instead of a no-op
  - Debug: Debug-level logging

# CLI Flags

	-p               Server port
	-backend         Storage backend
	-file            Answers file path
	-d               Database URL
	-bolt            Bolt database file
	-owner, -repo, -branch, -github-api
	-github-token    GitHub token
	-admin-password  Admin password
	-attempts        Submission attempts
	-strict-erase    404 on erasing a missing file
	-v               Debug logging
	-env-file        Env file to load (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	BACKEND          → -backend
	FILE_PATH        → -file
	DATABASE_URL     → -d
	BOLT_PATH        → -bolt
	GITHUB_TOKEN     → -github-token
	GITHUB_OWNER     → -owner
	GITHUB_REPO      → -repo
	GITHUB_BRANCH    → -branch
	GITHUB_API_URL   → -github-api
	ADMIN_PASSWORD   → -admin-password
	SUBMIT_ATTEMPTS  → -attempts
	STRICT_ERASE     → -strict-erase
	LOG_LEVEL=debug  → -v

GITHUB_COMMITTER_NAME and GITHUB_COMMITTER_EMAIL have no flag.

CLI flags take precedence over environment variables. The env file is
loaded with godotenv and never overrides variables already set.

# Validation

ParseFlags returns an error if required values are missing:

  - ADMIN_PASSWORD must be provided
  - GITHUB_TOKEN must be provided for the github backend
  - DATABASE_URL must be provided for postgres and sqlite
*/
package cliparse
