// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package bolthost keeps hosted files in a local BoltDB database. Useful
// for single-machine deployments that should survive restarts without a
// database server.
package bolthost

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/macdeesh/patterns/filehost"
)

const (
	bContent = "content"
	bVersion = "version"

	defaultTO = 2 * time.Second
)

// Host is a BoltDB-backed implementation of filehost.Host.
type Host struct {
	db *bolt.DB
}

// Open opens (or creates) a BoltDB database at path.
func Open(path string) (*Host, error) {
	if path == "" {
		return nil, errors.New("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: defaultTO})
	if err != nil {
		return nil, err
	}

	h := &Host{db: db}
	if err := h.db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bContent)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(bVersion)); err != nil {
			return err
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return h, nil
}

func (h *Host) Close() error { return h.db.Close() }

func (h *Host) Read(ctx context.Context, path string) (filehost.Object, error) {
	if err := ctx.Err(); err != nil {
		return filehost.Object{}, err
	}

	var obj filehost.Object
	err := h.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bVersion)).Get([]byte(path))
		if v == nil {
			return filehost.ErrNotFound
		}
		// Values are only valid inside the transaction
		obj.Version = string(v)
		obj.Data = append([]byte(nil), tx.Bucket([]byte(bContent)).Get([]byte(path))...)
		return nil
	})
	if err != nil {
		return filehost.Object{}, err
	}
	return obj, nil
}

func (h *Host) Write(ctx context.Context, path string, data []byte, version string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	next := filehost.BlobSHA(data)
	err := h.db.Update(func(tx *bolt.Tx) error {
		versions := tx.Bucket([]byte(bVersion))
		cur := versions.Get([]byte(path))

		if version == "" && cur != nil {
			return filehost.ErrConflict
		}
		if version != "" && string(cur) != version {
			return filehost.ErrConflict
		}

		if err := tx.Bucket([]byte(bContent)).Put([]byte(path), data); err != nil {
			return err
		}
		return versions.Put([]byte(path), []byte(next))
	})
	if err != nil {
		return "", err
	}
	return next, nil
}

func (h *Host) Delete(ctx context.Context, path string, version string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return h.db.Update(func(tx *bolt.Tx) error {
		versions := tx.Bucket([]byte(bVersion))
		cur := versions.Get([]byte(path))
		if cur == nil {
			return filehost.ErrNotFound
		}
		if string(cur) != version {
			return filehost.ErrConflict
		}

		if err := tx.Bucket([]byte(bContent)).Delete([]byte(path)); err != nil {
			return err
		}
		return versions.Delete([]byte(path))
	})
}
