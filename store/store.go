// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/macdeesh/patterns/filehost"
)

// DefaultPath is where the records file lives unless configured otherwise.
const DefaultPath = "data/answers.json"

// Store is an append-only list of JSON records kept in one file on a
// filehost.Host. It holds no state between calls: every operation reads the
// file, and every mutation is conditioned on the version from that read.
type Store struct {
	host        filehost.Host
	path        string
	strictErase bool
}

type Option func(*Store)

// WithStrictErase makes EraseAll fail with ErrNotFound when there is no
// file, instead of succeeding as a no-op.
func WithStrictErase() Option {
	return func(s *Store) { s.strictErase = true }
}

func New(host filehost.Host, path string, opts ...Option) *Store {
	if path == "" {
		path = DefaultPath
	}
	s := &Store{host: host, path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot is the decoded file plus the version it was read at. Version is
// empty when the file does not exist.
type Snapshot struct {
	Records []json.RawMessage
	Version string
}

// Snapshot reads the current records and their version token.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	obj, err := s.host.Read(ctx, s.path)
	if errors.Is(err, filehost.ErrNotFound) {
		return Snapshot{Records: []json.RawMessage{}}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	records, err := decode(obj.Data)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Records: records, Version: obj.Version}, nil
}

// ListAll returns every record in insertion order, each in compact form.
// An absent file yields an empty, non-nil slice.
func (s *Store) ListAll(ctx context.Context) ([]json.RawMessage, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Records, nil
}

// Append adds record to the end of the file. It performs exactly one
// conditional write and never retries: a concurrent change surfaces as
// ErrConflict and the caller decides whether to run Append again.
func (s *Store) Append(ctx context.Context, record json.RawMessage) error {
	rec, err := compact(record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	records := append(snap.Records, rec)
	data, err := encode(records)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	version, err := s.host.Write(ctx, s.path, data, snap.Version)
	if errors.Is(err, filehost.ErrConflict) {
		return fmt.Errorf("append to %s: %w", s.path, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	slog.Debug("record appended",
		"path", s.path,
		"records", len(records),
		"size", humanize.Bytes(uint64(len(data))),
		"version", version,
	)
	return nil
}

// EraseAll deletes the file. The content is not parsed first, so a corrupt
// file can still be erased. A missing file is a no-op unless the store was
// built WithStrictErase.
func (s *Store) EraseAll(ctx context.Context) error {
	obj, err := s.host.Read(ctx, s.path)
	if errors.Is(err, filehost.ErrNotFound) {
		return s.missingOnErase()
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	err = s.host.Delete(ctx, s.path, obj.Version)
	switch {
	case err == nil:
	case errors.Is(err, filehost.ErrNotFound):
		// Someone else erased it between our read and delete
		return s.missingOnErase()
	case errors.Is(err, filehost.ErrConflict):
		return fmt.Errorf("erase %s: %w", s.path, ErrConflict)
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	slog.Info("records erased", "path", s.path, "size", humanize.Bytes(uint64(len(obj.Data))))
	return nil
}

func (s *Store) missingOnErase() error {
	if s.strictErase {
		return ErrNotFound
	}
	return nil
}

func decode(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []json.RawMessage{}, nil
	}
	// Unmarshal would happily turn null into an empty slice
	if trimmed[0] != '[' {
		return nil, ErrCorruptData
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}

	records := make([]json.RawMessage, len(raw))
	for i, r := range raw {
		c, err := compact(r)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrCorruptData, i, err)
		}
		records[i] = c
	}
	return records, nil
}

// encode writes the array pretty-printed with two-space indentation.
// HTML escaping is off so records come back byte-identical after compact.
func encode(records []json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compact(record []byte) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, record); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}
