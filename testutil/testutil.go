// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/macdeesh/patterns/auth"
	"github.com/macdeesh/patterns/cliparse"
	"github.com/macdeesh/patterns/filehost"
	"github.com/macdeesh/patterns/filehost/memhost"
	"github.com/macdeesh/patterns/store"
)

// TestAdminPassword is the admin secret in GetTestConfig
const TestAdminPassword = "test-admin-password"

// GetTestConfig returns a test configuration on the memory backend
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		Backend:        cliparse.BackendMemory,
		FilePath:       store.DefaultPath,
		AdminPassword:  TestAdminPassword,
		SubmitAttempts: 3,
	}
}

// NewTestStore builds a guarded store over host using cfg's path, password
// and erase policy. A nil host gets a fresh memhost.
func NewTestStore(t *testing.T, host filehost.Host, cfg cliparse.Config) *store.Guarded {
	t.Helper()

	if host == nil {
		host = memhost.New()
	}

	var opts []store.Option
	if cfg.StrictErase {
		opts = append(opts, store.WithStrictErase())
	}

	authz := auth.NewSharedSecret(cfg.AdminPassword)
	return store.NewGuarded(store.New(host, cfg.FilePath, opts...), authz)
}

// SeedRecords appends each record through a plain store on host
func SeedRecords(t *testing.T, host filehost.Host, path string, records ...string) {
	t.Helper()

	s := store.New(host, path)
	for _, rec := range records {
		if err := s.Append(context.Background(), json.RawMessage(rec)); err != nil {
			t.Fatalf("Failed to seed record %s: %v", rec, err)
		}
	}
}

// MakeRequest creates an HTTP request with optional JSON body and headers
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeRawRequest creates an HTTP request with a body sent as-is
func MakeRawRequest(method, path, body string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// AdminHeaders returns the header set carrying the test admin password
func AdminHeaders() map[string]string {
	return map[string]string{"X-Admin-Key": TestAdminPassword}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
