package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	BackendGitHub   = "github"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendBolt     = "bolt"
	BackendMemory   = "memory"
)

type Config struct {
	Port     int
	Backend  string
	FilePath string
	Debug    bool

	// SQL backends
	DatabaseURL string

	// Bolt backend
	BoltPath string

	// GitHub backend
	GitHubToken    string
	GitHubOwner    string
	GitHubRepo     string
	GitHubBranch   string
	GitHubAPIURL   string
	CommitterName  string
	CommitterEmail string

	// Access and write policy
	AdminPassword  string
	SubmitAttempts int
	StrictErase    bool
}

// ParseFlags validates flags and fills the rest from the environment.
// Values in the env file (default .env) never override variables already set.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("patterns", flag.ContinueOnError)

	fs.StringVar(&envFile, "env-file", ".env", "Env file to load if present")

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.Backend, "backend", "", "Storage backend (github, postgres, sqlite, bolt, memory)")
	fs.StringVar(&cfg.FilePath, "file", "", "Path of the answers file inside the backend")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (postgres, sqlite)")
	fs.StringVar(&cfg.BoltPath, "bolt", "", "Bolt database file")
	fs.BoolVar(&cfg.Debug, "v", false, "Debug logging")

	fs.StringVar(&cfg.GitHubOwner, "owner", "", "GitHub repository owner")
	fs.StringVar(&cfg.GitHubRepo, "repo", "", "GitHub repository name")
	fs.StringVar(&cfg.GitHubBranch, "branch", "", "GitHub branch")
	fs.StringVar(&cfg.GitHubAPIURL, "github-api", "", "GitHub API base URL")

	fs.IntVar(&cfg.SubmitAttempts, "attempts", 0, "Write attempts per submission on conflict")
	fs.BoolVar(&cfg.StrictErase, "strict-erase", false, "Erasing a missing file returns 404")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.GitHubToken, "github-token", "", "GitHub token (prefer env)")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin password (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.SubmitAttempts == 0 {
		if s := os.Getenv("SUBMIT_ATTEMPTS"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				return Config{}, errors.New("invalid SUBMIT_ATTEMPTS env variable")
			}
			cfg.SubmitAttempts = n
		} else {
			cfg.SubmitAttempts = 3
		}
	}
	if cfg.SubmitAttempts < 1 {
		return Config{}, errors.New("attempts must be at least 1")
	}
	if !cfg.StrictErase {
		cfg.StrictErase = envBool("STRICT_ERASE")
	}
	if !cfg.Debug {
		cfg.Debug = strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug")
	}

	fallback(&cfg.Backend, "BACKEND", BackendGitHub)
	fallback(&cfg.FilePath, "FILE_PATH", "data/answers.json")
	fallback(&cfg.DatabaseURL, "DATABASE_URL", "")
	fallback(&cfg.BoltPath, "BOLT_PATH", "data/patterns.db")
	fallback(&cfg.GitHubOwner, "GITHUB_OWNER", "macdeesh")
	fallback(&cfg.GitHubRepo, "GITHUB_REPO", "Patterns")
	fallback(&cfg.GitHubBranch, "GITHUB_BRANCH", "main")
	fallback(&cfg.GitHubAPIURL, "GITHUB_API_URL", "")
	fallback(&cfg.CommitterName, "GITHUB_COMMITTER_NAME", "")
	fallback(&cfg.CommitterEmail, "GITHUB_COMMITTER_EMAIL", "")

	// Secrets - MUST be provided
	fallback(&cfg.GitHubToken, "GITHUB_TOKEN", "")
	fallback(&cfg.AdminPassword, "ADMIN_PASSWORD", "")
	if cfg.AdminPassword == "" {
		return Config{}, errors.New("ADMIN_PASSWORD required")
	}

	switch cfg.Backend {
	case BackendGitHub:
		if cfg.GitHubToken == "" {
			return Config{}, errors.New("GITHUB_TOKEN required for the github backend")
		}
	case BackendPostgres, BackendSQLite:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case BackendBolt, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	return cfg, nil
}

// fallback fills an empty field from env, then from def.
func fallback(field *string, env, def string) {
	if *field != "" {
		return
	}
	if v := os.Getenv(env); v != "" {
		*field = v
		return
	}
	*field = def
}

func envBool(env string) bool {
	b, _ := strconv.ParseBool(os.Getenv(env))
	return b
}
