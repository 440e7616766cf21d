// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/macdeesh/patterns/filehost/githubhost"
	"github.com/macdeesh/patterns/models"
	"github.com/macdeesh/patterns/testutil"
)

// TestFullAnswersLifecycle runs submit, list and erase against a fake
// GitHub Contents API
func TestFullAnswersLifecycle(t *testing.T) {
	fake := testutil.NewFakeGitHub(t)
	cfg := testutil.GetTestConfig()

	host, err := githubhost.New(context.Background(), githubhost.Config{
		Token:   "test-token",
		Owner:   "macdeesh",
		Repo:    "Patterns",
		BaseURL: fake.URL(),
	})
	if err != nil {
		t.Fatalf("Failed to create GitHub host: %v", err)
	}
	handler := NewRecordsHandler(testutil.NewTestStore(t, host, cfg), cfg)

	// Step 1: Three users finish the quiz
	for i := 1; i <= 3; i++ {
		sub := models.Submission{
			Contact:       fmt.Sprintf("user%d@example.com", i),
			Compatibility: i * 25,
			Answers:       []int{i, i + 1},
			Timestamp:     "2025-06-01T12:00:00Z",
		}
		req := testutil.MakeRequest("POST", "/answers", map[string]any{"userData": sub}, nil)
		w := httptest.NewRecorder()
		handler.Submit(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Step 1 - Submit %d failed: %d - %s", i, w.Code, w.Body.String())
		}
	}
	t.Log("Step 1 - Submitted 3 answers")

	// Step 2: The file in the repository is an indented JSON array
	content, ok := fake.File(cfg.FilePath)
	if !ok {
		t.Fatal("Step 2 - Answers file missing from repository")
	}
	if !strings.HasPrefix(string(content), "[\n  {") {
		t.Errorf("Step 2 - Expected indented array, got %q", content)
	}
	var onDisk []models.Submission
	if err := json.Unmarshal(content, &onDisk); err != nil {
		t.Fatalf("Step 2 - Stored file is not valid JSON: %v", err)
	}
	if len(onDisk) != 3 || onDisk[0].Contact != "user1@example.com" || onDisk[2].Contact != "user3@example.com" {
		t.Errorf("Step 2 - Unexpected stored answers: %+v", onDisk)
	}

	// Step 3: Admin lists answers with the password query parameter
	req := testutil.MakeRequest("GET", "/answers?password="+testutil.TestAdminPassword, nil, nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - List failed: %d - %s", w.Code, w.Body.String())
	}

	var listResp struct {
		Records []models.Submission `json:"records"`
	}
	json.NewDecoder(w.Body).Decode(&listResp)
	if len(listResp.Records) != 3 {
		t.Fatalf("Step 3 - Expected 3 records, got %d", len(listResp.Records))
	}
	for i, rec := range listResp.Records {
		if rec.Compatibility != (i+1)*25 {
			t.Errorf("Step 3 - Record %d out of order: %+v", i, rec)
		}
	}

	// Step 4: Admin erases everything
	req = testutil.MakeRequest("DELETE", "/answers", nil, testutil.AdminHeaders())
	w = httptest.NewRecorder()
	handler.Erase(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 4 - Erase failed: %d - %s", w.Code, w.Body.String())
	}
	if _, ok := fake.File(cfg.FilePath); ok {
		t.Error("Step 4 - Answers file still present after erase")
	}

	// Step 5: Listing again is empty, not an error
	if got := listRecords(t, handler); len(got) != 0 {
		t.Errorf("Step 5 - Expected no records, got %d", len(got))
	}

	// Every change is one commit on the configured branch
	commits := fake.Commits()
	if len(commits) != 4 {
		t.Fatalf("Expected 4 commits, got %d", len(commits))
	}
	for i, c := range commits[:3] {
		if c.Method != http.MethodPut || !strings.HasPrefix(c.Message, "Add new answer at ") {
			t.Errorf("Commit %d: unexpected %s %q", i, c.Method, c.Message)
		}
		if c.Branch != "main" {
			t.Errorf("Commit %d: expected branch main, got %q", i, c.Branch)
		}
	}
	if last := commits[3]; last.Method != http.MethodDelete || last.Message != "Erase saved answers" {
		t.Errorf("Unexpected erase commit: %s %q", last.Method, last.Message)
	}
}

func TestGitHubOutageIsBadGateway(t *testing.T) {
	fake := testutil.NewFakeGitHub(t)
	cfg := testutil.GetTestConfig()

	host, err := githubhost.New(context.Background(), githubhost.Config{
		Token:   "test-token",
		Owner:   "macdeesh",
		Repo:    "Patterns",
		BaseURL: fake.URL(),
	})
	if err != nil {
		t.Fatalf("Failed to create GitHub host: %v", err)
	}
	handler := NewRecordsHandler(testutil.NewTestStore(t, host, cfg), cfg)

	fake.FailNext(1)

	w := httptest.NewRecorder()
	handler.Submit(w, testutil.MakeRawRequest("POST", "/answers", `{"userData":{"a":1}}`, nil))
	testutil.AssertStatus(t, w, http.StatusBadGateway)

	if len(fake.Commits()) != 0 {
		t.Error("Expected no commit after an outage")
	}

	// Storage is back
	w = httptest.NewRecorder()
	handler.Submit(w, testutil.MakeRawRequest("POST", "/answers", `{"userData":{"a":1}}`, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}
