// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

// noEnvFile keeps a stray .env next to the tests from leaking in
var noEnvFile = []string{"-env-file", ""}

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("BACKEND", "memory")
	os.Setenv("ADMIN_PASSWORD", "karim")
	os.Setenv("SUBMIT_ATTEMPTS", "5")
	os.Setenv("STRICT_ERASE", "true")
	defer os.Clearenv()

	cfg, err := ParseFlags(noEnvFile)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.Backend != BackendMemory {
		t.Errorf("expected memory backend, got %s", cfg.Backend)
	}
	if cfg.AdminPassword != "karim" {
		t.Errorf("expected admin password from env, got %q", cfg.AdminPassword)
	}
	if cfg.SubmitAttempts != 5 {
		t.Errorf("expected 5 attempts, got %d", cfg.SubmitAttempts)
	}
	if !cfg.StrictErase {
		t.Error("expected strict erase from env")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("BACKEND", "github")
	defer os.Clearenv()

	cfg, err := ParseFlags(append(noEnvFile, "-p", "8080", "-backend", "sqlite", "-d", "file:test.db", "-admin-password", "s1"))
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("CLI should override env: expected sqlite, got %s", cfg.Backend)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	os.Setenv("ADMIN_PASSWORD", "karim")
	os.Setenv("GITHUB_TOKEN", "ghp_test")
	defer os.Clearenv()

	cfg, err := ParseFlags(noEnvFile)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.Backend != BackendGitHub {
		t.Errorf("expected github backend by default, got %s", cfg.Backend)
	}
	if cfg.FilePath != "data/answers.json" {
		t.Errorf("expected default file path, got %s", cfg.FilePath)
	}
	if cfg.GitHubOwner != "macdeesh" || cfg.GitHubRepo != "Patterns" || cfg.GitHubBranch != "main" {
		t.Errorf("unexpected github defaults: %s/%s@%s", cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubBranch)
	}
	if cfg.SubmitAttempts != 3 {
		t.Errorf("expected 3 attempts by default, got %d", cfg.SubmitAttempts)
	}
	if cfg.StrictErase {
		t.Error("expected lenient erase by default")
	}
}

func TestParseFlags_Validation(t *testing.T) {
	defer os.Clearenv()

	testCases := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing admin password", map[string]string{"BACKEND": "memory"}, nil},
		{"github without token", map[string]string{"ADMIN_PASSWORD": "x"}, nil},
		{"postgres without url", map[string]string{"ADMIN_PASSWORD": "x", "BACKEND": "postgres"}, nil},
		{"sqlite without url", map[string]string{"ADMIN_PASSWORD": "x"}, []string{"-backend", "sqlite"}},
		{"unknown backend", map[string]string{"ADMIN_PASSWORD": "x", "BACKEND": "s3"}, nil},
		{"bad port", map[string]string{"ADMIN_PASSWORD": "x", "BACKEND": "memory", "PORT": "http"}, nil},
		{"bad attempts env", map[string]string{"ADMIN_PASSWORD": "x", "BACKEND": "memory", "SUBMIT_ATTEMPTS": "0"}, nil},
		{"negative attempts flag", map[string]string{"ADMIN_PASSWORD": "x", "BACKEND": "memory"}, []string{"-attempts", "-1"}},
		{"unknown flag", map[string]string{"ADMIN_PASSWORD": "x", "BACKEND": "memory"}, []string{"-nope"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tc.env {
				os.Setenv(k, v)
			}

			if _, err := ParseFlags(append(noEnvFile, tc.args...)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	defer os.Clearenv()
	os.Clearenv()
	os.Setenv("ADMIN_PASSWORD", "from-process")

	path := filepath.Join(t.TempDir(), ".env")
	content := "BACKEND=bolt\nBOLT_PATH=/tmp/patterns-test.db\nADMIN_PASSWORD=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-env-file", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Backend != BackendBolt {
		t.Errorf("expected bolt backend from env file, got %s", cfg.Backend)
	}
	if cfg.BoltPath != "/tmp/patterns-test.db" {
		t.Errorf("expected bolt path from env file, got %s", cfg.BoltPath)
	}
	// Process env wins over the file
	if cfg.AdminPassword != "from-process" {
		t.Errorf("expected process env to win, got %q", cfg.AdminPassword)
	}
}

func TestParseFlags_MissingEnvFileIsFine(t *testing.T) {
	defer os.Clearenv()
	os.Clearenv()
	os.Setenv("ADMIN_PASSWORD", "x")
	os.Setenv("BACKEND", "memory")

	_, err := ParseFlags([]string{"-env-file", filepath.Join(t.TempDir(), "does-not-exist.env")})
	if err != nil {
		t.Fatalf("missing env file should be ignored, got %v", err)
	}
}
