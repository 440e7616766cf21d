// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package sqlhost keeps hosted files in the hosted_file table of a
// PostgreSQL or SQLite database. Call db.CreateSchema before use.
package sqlhost

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/macdeesh/patterns/filehost"
)

type Host struct {
	db *sql.DB
}

func New(db *sql.DB) *Host {
	return &Host{db: db}
}

func (h *Host) Read(ctx context.Context, path string) (filehost.Object, error) {
	var obj filehost.Object
	err := h.db.QueryRowContext(ctx,
		"SELECT content, version FROM hosted_file WHERE path = $1", path,
	).Scan(&obj.Data, &obj.Version)
	if err == sql.ErrNoRows {
		return filehost.Object{}, filehost.ErrNotFound
	}
	if err != nil {
		return filehost.Object{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return obj, nil
}

func (h *Host) Write(ctx context.Context, path string, data []byte, version string) (string, error) {
	next := filehost.BlobSHA(data)
	now := time.Now().UTC()

	var (
		res sql.Result
		err error
	)
	if version == "" {
		res, err = h.db.ExecContext(ctx, `
			INSERT INTO hosted_file (path, content, version, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (path) DO NOTHING
		`, path, data, next, now)
	} else {
		// A missing row or a changed version both leave zero rows affected
		res, err = h.db.ExecContext(ctx, `
			UPDATE hosted_file
			SET content = $1, version = $2, updated_at = $3
			WHERE path = $4 AND version = $5
		`, data, next, now, path, version)
	}
	if err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if n == 0 {
		return "", filehost.ErrConflict
	}
	return next, nil
}

func (h *Host) Delete(ctx context.Context, path string, version string) error {
	res, err := h.db.ExecContext(ctx,
		"DELETE FROM hosted_file WHERE path = $1 AND version = $2", path, version)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	if n > 0 {
		return nil
	}

	// Nothing deleted: tell a missing file apart from a stale version
	var one int
	err = h.db.QueryRowContext(ctx, "SELECT 1 FROM hosted_file WHERE path = $1", path).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return filehost.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return filehost.ErrConflict
}
