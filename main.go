package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/mattn/go-isatty"
	_ "modernc.org/sqlite"

	"github.com/macdeesh/patterns/auth"
	"github.com/macdeesh/patterns/cliparse"
	"github.com/macdeesh/patterns/db"
	"github.com/macdeesh/patterns/filehost"
	"github.com/macdeesh/patterns/filehost/bolthost"
	"github.com/macdeesh/patterns/filehost/githubhost"
	"github.com/macdeesh/patterns/filehost/memhost"
	"github.com/macdeesh/patterns/filehost/sqlhost"
	"github.com/macdeesh/patterns/middleware"
	"github.com/macdeesh/patterns/router"
	"github.com/macdeesh/patterns/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Debug)

	// Open the file host behind the answers store
	host, closeHost, err := openHost(context.Background(), cfg)
	if err != nil {
		slog.Error("storage setup failed", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer closeHost()
	slog.Info("Storage ready", "backend", cfg.Backend, "path", cfg.FilePath)

	var opts []store.Option
	if cfg.StrictErase {
		opts = append(opts, store.WithStrictErase())
	}
	guarded := store.NewGuarded(
		store.New(host, cfg.FilePath, opts...),
		auth.NewSharedSecret(cfg.AdminPassword),
	)

	// Create router
	mux := router.NewRouter(guarded, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// setupLogger uses readable text on a terminal and JSON otherwise
func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func openHost(ctx context.Context, cfg cliparse.Config) (filehost.Host, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case cliparse.BackendGitHub:
		h, err := githubhost.New(ctx, githubhost.Config{
			Token:          cfg.GitHubToken,
			Owner:          cfg.GitHubOwner,
			Repo:           cfg.GitHubRepo,
			Branch:         cfg.GitHubBranch,
			BaseURL:        cfg.GitHubAPIURL,
			CommitterName:  cfg.CommitterName,
			CommitterEmail: cfg.CommitterEmail,
		})
		if err != nil {
			return nil, nil, err
		}
		return h, noop, nil

	case cliparse.BackendPostgres, cliparse.BackendSQLite:
		driver, err := db.DriverName(cfg.Backend)
		if err != nil {
			return nil, nil, err
		}
		dbConn, err := sql.Open(driver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		if cfg.Backend == cliparse.BackendSQLite {
			// SQLite allows one writer at a time
			dbConn.SetMaxOpenConns(1)
		}

		// Verify connection
		if err := dbConn.PingContext(ctx); err != nil {
			dbConn.Close()
			return nil, nil, fmt.Errorf("database ping failed: %w", err)
		}

		// Create schema (tables)
		if err := db.CreateSchema(dbConn, cfg.Backend); err != nil {
			dbConn.Close()
			return nil, nil, fmt.Errorf("schema creation failed: %w", err)
		}
		slog.Info("Database schema ready")
		return sqlhost.New(dbConn), dbConn.Close, nil

	case cliparse.BackendBolt:
		h, err := bolthost.Open(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return h, h.Close, nil

	case cliparse.BackendMemory:
		slog.Warn("memory backend: answers are lost on restart")
		return memhost.New(), noop, nil
	}

	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
