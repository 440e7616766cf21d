// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package memhost is an in-process filehost.Host. Contents are lost when
// the process exits.
package memhost

import (
	"context"
	"sync"

	"github.com/macdeesh/patterns/filehost"
)

type Host struct {
	mu    sync.RWMutex
	files map[string]filehost.Object
}

func New() *Host {
	return &Host{files: make(map[string]filehost.Object)}
}

func (h *Host) Read(ctx context.Context, path string) (filehost.Object, error) {
	if err := ctx.Err(); err != nil {
		return filehost.Object{}, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	obj, ok := h.files[path]
	if !ok {
		return filehost.Object{}, filehost.ErrNotFound
	}
	return filehost.Object{Data: clone(obj.Data), Version: obj.Version}, nil
}

func (h *Host) Write(ctx context.Context, path string, data []byte, version string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	cur, ok := h.files[path]
	if ok != (version != "") || (ok && cur.Version != version) {
		return "", filehost.ErrConflict
	}

	next := filehost.BlobSHA(data)
	h.files[path] = filehost.Object{Data: clone(data), Version: next}
	return next, nil
}

func (h *Host) Delete(ctx context.Context, path string, version string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	cur, ok := h.files[path]
	if !ok {
		return filehost.ErrNotFound
	}
	if cur.Version != version {
		return filehost.ErrConflict
	}
	delete(h.files, path)
	return nil
}

// Corrupt replaces the stored bytes without a version check.
func (h *Host) Corrupt(path string, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.files[path] = filehost.Object{Data: clone(data), Version: filehost.BlobSHA(data)}
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
