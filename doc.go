// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Patterns API server.

Patterns collects quiz results into a single JSON array file. By default
the file lives in a GitHub repository and every submission is a commit;
concurrent submissions are kept safe by conditioning each write on the
file's blob sha.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	GITHUB_TOKEN=ghp_... ADMIN_PASSWORD=... go run .

Or with another backend:

	go run . -backend sqlite -d "file:patterns.db" -admin-password secret

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - ADMIN_PASSWORD (-admin-password): Secret for listing and erasing
  - GITHUB_TOKEN (-github-token): For the github backend
  - DATABASE_URL (-d): For the postgres and sqlite backends

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - BACKEND (-backend): github, postgres, sqlite, bolt, memory
  - FILE_PATH (-file): Answers file (default: data/answers.json)
  - LOG_LEVEL=debug (-v): Debug logging

Logs are text on a terminal and JSON otherwise.

# Architecture

  - store: Append-only record list with optimistic concurrency
  - filehost: Versioned file hosts (GitHub, SQL, bolt, memory)
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Admin password check
  - db: Schema for the SQL file host
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
