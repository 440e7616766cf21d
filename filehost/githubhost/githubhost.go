// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package githubhost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v25/github"
	"golang.org/x/oauth2"

	"github.com/macdeesh/patterns/filehost"
)

// Defaults applied by New when the Config leaves a field empty.
const (
	DefaultBranch        = "main"
	DefaultWriteMessage  = "Add new answer"
	DefaultDeleteMessage = "Erase saved answers"
)

type Config struct {
	Token  string
	Owner  string
	Repo   string
	Branch string

	// BaseURL overrides https://api.github.com/ (GitHub Enterprise, tests).
	BaseURL string

	CommitterName  string
	CommitterEmail string

	// WriteMessage is suffixed with " at <timestamp>" on every commit.
	WriteMessage  string
	DeleteMessage string
}

// Host stores files in a GitHub repository through the Contents API.
// The version token is the blob sha GitHub reports for the file.
type Host struct {
	client *github.Client
	cfg    Config
	now    func() time.Time
}

func New(ctx context.Context, cfg Config) (*Host, error) {
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, errors.New("github owner and repo are required")
	}
	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}
	if cfg.WriteMessage == "" {
		cfg.WriteMessage = DefaultWriteMessage
	}
	if cfg.DeleteMessage == "" {
		cfg.DeleteMessage = DefaultDeleteMessage
	}

	var httpClient *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	client := github.NewClient(httpClient)

	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		// go-github resolves relative paths, so the base needs a trailing slash
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid github base url: %w", err)
		}
		client.BaseURL = u
	}

	return &Host{client: client, cfg: cfg, now: time.Now}, nil
}

func (h *Host) Read(ctx context.Context, path string) (filehost.Object, error) {
	file, _, resp, err := h.client.Repositories.GetContents(ctx, h.cfg.Owner, h.cfg.Repo, path,
		&github.RepositoryContentGetOptions{Ref: h.cfg.Branch})
	if err != nil {
		if statusOf(resp) == http.StatusNotFound {
			return filehost.Object{}, filehost.ErrNotFound
		}
		return filehost.Object{}, fmt.Errorf("failed to get %s: %w", path, err)
	}
	if file == nil {
		return filehost.Object{}, fmt.Errorf("%s is a directory", path)
	}

	content, err := file.GetContent()
	if err != nil {
		return filehost.Object{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return filehost.Object{Data: []byte(content), Version: file.GetSHA()}, nil
}

func (h *Host) Write(ctx context.Context, path string, data []byte, version string) (string, error) {
	opts := &github.RepositoryContentFileOptions{
		Message:   github.String(fmt.Sprintf("%s at %s", h.cfg.WriteMessage, h.now().UTC().Format(time.RFC3339))),
		Content:   data,
		Branch:    github.String(h.cfg.Branch),
		Committer: h.committer(),
	}

	var (
		res  *github.RepositoryContentResponse
		resp *github.Response
		err  error
	)
	if version == "" {
		res, resp, err = h.client.Repositories.CreateFile(ctx, h.cfg.Owner, h.cfg.Repo, path, opts)
	} else {
		opts.SHA = github.String(version)
		res, resp, err = h.client.Repositories.UpdateFile(ctx, h.cfg.Owner, h.cfg.Repo, path, opts)
	}
	if err != nil {
		if isConflict(resp) {
			return "", filehost.ErrConflict
		}
		return "", fmt.Errorf("failed to put %s: %w", path, err)
	}
	if res == nil || res.Content == nil {
		return "", fmt.Errorf("put %s: response carried no content sha", path)
	}

	slog.Debug("github file written", "path", path, "sha", res.Content.GetSHA(), "commit", res.Commit.GetSHA())
	return res.Content.GetSHA(), nil
}

func (h *Host) Delete(ctx context.Context, path string, version string) error {
	opts := &github.RepositoryContentFileOptions{
		Message:   github.String(h.cfg.DeleteMessage),
		SHA:       github.String(version),
		Branch:    github.String(h.cfg.Branch),
		Committer: h.committer(),
	}

	_, resp, err := h.client.Repositories.DeleteFile(ctx, h.cfg.Owner, h.cfg.Repo, path, opts)
	if err != nil {
		if statusOf(resp) == http.StatusNotFound {
			return filehost.ErrNotFound
		}
		if isConflict(resp) {
			return filehost.ErrConflict
		}
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

func (h *Host) committer() *github.CommitAuthor {
	if h.cfg.CommitterName == "" || h.cfg.CommitterEmail == "" {
		return nil
	}
	return &github.CommitAuthor{
		Name:  github.String(h.cfg.CommitterName),
		Email: github.String(h.cfg.CommitterEmail),
	}
}

func statusOf(resp *github.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}

// GitHub answers 409 for a stale sha and 422 when a sha is missing for an
// existing file or supplied for a missing one.
func isConflict(resp *github.Response) bool {
	switch statusOf(resp) {
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return true
	}
	return false
}
