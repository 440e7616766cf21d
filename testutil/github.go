// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/macdeesh/patterns/filehost"
)

// FakeGitHub serves the subset of the GitHub Contents API the githubhost
// package uses, with GitHub's sha rules.
type FakeGitHub struct {
	Server *httptest.Server

	mu       sync.Mutex
	files    map[string][]byte
	commits  []Commit
	authz    []string
	failNext int
}

// Commit records one accepted write or delete.
type Commit struct {
	Method  string
	Path    string
	Message string
	Branch  string
}

type fakeFileRequest struct {
	Message   string `json:"message"`
	Content   []byte `json:"content"`
	SHA       string `json:"sha"`
	Branch    string `json:"branch"`
	Committer *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"committer"`
}

// NewFakeGitHub starts the fake and stops it when the test ends.
func NewFakeGitHub(t *testing.T) *FakeGitHub {
	t.Helper()

	f := &FakeGitHub{files: make(map[string][]byte)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/{owner}/{repo}/contents/{path...}", f.get)
	mux.HandleFunc("PUT /repos/{owner}/{repo}/contents/{path...}", f.put)
	mux.HandleFunc("DELETE /repos/{owner}/{repo}/contents/{path...}", f.delete)

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.authz = append(f.authz, r.Header.Get("Authorization"))
		fail := f.failNext > 0
		if fail {
			f.failNext--
		}
		f.mu.Unlock()

		if fail {
			writeGitHubError(w, http.StatusServiceUnavailable, "Service Unavailable")
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.Server.Close)

	return f
}

// URL is the API base URL to hand to githubhost.Config.BaseURL.
func (f *FakeGitHub) URL() string {
	return f.Server.URL + "/"
}

// FailNext makes the next n requests answer 503.
func (f *FakeGitHub) FailNext(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext = n
}

// SetFile stores raw content without any sha check.
func (f *FakeGitHub) SetFile(path string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = append([]byte(nil), data...)
}

// File returns the stored content and whether it exists.
func (f *FakeGitHub) File(path string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[path]
	return data, ok
}

func (f *FakeGitHub) Commits() []Commit {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Commit(nil), f.commits...)
}

// AuthHeaders returns the Authorization header of every request received.
func (f *FakeGitHub) AuthHeaders() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.authz...)
}

func (f *FakeGitHub) get(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")

	f.mu.Lock()
	data, ok := f.files[path]
	f.mu.Unlock()

	if !ok {
		writeGitHubError(w, http.StatusNotFound, "Not Found")
		return
	}

	writeGitHubJSON(w, http.StatusOK, map[string]any{
		"type":     "file",
		"encoding": "base64",
		"path":     path,
		"sha":      filehost.BlobSHA(data),
		"size":     len(data),
		"content":  base64.StdEncoding.EncodeToString(data),
	})
}

func (f *FakeGitHub) put(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")

	var req fakeFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGitHubError(w, http.StatusBadRequest, "Problems parsing JSON")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	cur, ok := f.files[path]
	switch {
	case ok && req.SHA == "":
		writeGitHubError(w, http.StatusUnprocessableEntity, `Invalid request. "sha" wasn't supplied.`)
		return
	case !ok && req.SHA != "":
		writeGitHubError(w, http.StatusUnprocessableEntity, "sha does not match any file")
		return
	case ok && req.SHA != filehost.BlobSHA(cur):
		writeGitHubError(w, http.StatusConflict, path+" does not match "+req.SHA)
		return
	}

	f.files[path] = req.Content
	f.commits = append(f.commits, Commit{Method: http.MethodPut, Path: path, Message: req.Message, Branch: req.Branch})

	status := http.StatusOK
	if !ok {
		status = http.StatusCreated
	}
	writeGitHubJSON(w, status, map[string]any{
		"content": map[string]any{"path": path, "sha": filehost.BlobSHA(req.Content)},
		"commit":  map[string]any{"sha": filehost.BlobSHA([]byte(req.Message)), "message": req.Message},
	})
}

func (f *FakeGitHub) delete(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")

	var req fakeFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGitHubError(w, http.StatusBadRequest, "Problems parsing JSON")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	cur, ok := f.files[path]
	if !ok {
		writeGitHubError(w, http.StatusNotFound, "Not Found")
		return
	}
	if req.SHA != filehost.BlobSHA(cur) {
		writeGitHubError(w, http.StatusConflict, path+" does not match "+req.SHA)
		return
	}

	delete(f.files, path)
	f.commits = append(f.commits, Commit{Method: http.MethodDelete, Path: path, Message: req.Message, Branch: req.Branch})

	writeGitHubJSON(w, http.StatusOK, map[string]any{
		"content": nil,
		"commit":  map[string]any{"message": req.Message},
	})
}

func writeGitHubJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeGitHubError(w http.ResponseWriter, status int, message string) {
	writeGitHubJSON(w, status, map[string]string{
		"message":           message,
		"documentation_url": "https://docs.github.com/rest/repos/contents",
	})
}
