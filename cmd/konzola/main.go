package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erazemk/konzola/internal/cart"
	"github.com/erazemk/konzola/internal/client"
	"github.com/erazemk/konzola/internal/config"
	"github.com/erazemk/konzola/internal/db"
	"github.com/erazemk/konzola/internal/metrics"
	"github.com/erazemk/konzola/internal/store"
	"github.com/erazemk/konzola/internal/web"
)

// purgeInterval is how often expired session revocations and carts are
// removed.
const purgeInterval = time.Hour

// levelRouter is a slog.Handler that routes DEBUG/INFO/WARN to stdout and
// ERROR+ to stderr.
type levelRouter struct {
	min    slog.Level
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= lr.min
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		min:    lr.min,
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		min:    lr.min,
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging in the given format. If logPath
// is non-empty, all levels are also written to that file. Returns a cleanup
// function that closes the log file (if opened).
func setupLogger(logPath, format string, debug bool) (func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	newHandler := func(w io.Writer) slog.Handler {
		if format == "json" {
			return slog.NewJSONHandler(w, opts)
		}
		return slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(&levelRouter{
		min:    level,
		stdout: newHandler(stdoutW),
		stderr: newHandler(stderrW),
	}))
	return cleanup, nil
}

func main() {
	fs := flag.NewFlagSet("konzola", flag.ContinueOnError)

	var configPath string
	fs.StringVar(&configPath, "config", "", "")
	fs.StringVar(&configPath, "c", "", "")

	var envFile string
	fs.StringVar(&envFile, "env", ".env", "")
	fs.StringVar(&envFile, "e", ".env", "")

	var addr, dbPath, logPath, backendURL string
	fs.StringVar(&addr, "addr", "", "")
	fs.StringVar(&addr, "a", "", "")
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")
	fs.StringVar(&backendURL, "backend", "", "")
	fs.StringVar(&backendURL, "b", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: konzola [flags]

Flags:
  -c, -config <path>      YAML config file (default: none)
  -e, -env <path>         .env file loaded into the environment (default: .env)
  -a, -addr <host:port>   listen address (default: :8080)
  -b, -backend <url>      backend API base URL (default: http://localhost:8000)
  -d, -db <path>          SQLite session database path (default: konzola.sqlite3)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit

Every setting can also be given as a KONZOLA_* environment variable,
e.g. KONZOLA_BACKEND_URL. Flags win over the environment and the config file.
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if addr != "" {
		cfg.HTTP.Addr = addr
	}
	if dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if logPath != "" {
		cfg.Log.Path = logPath
	}
	if backendURL != "" {
		cfg.Backend.URL = backendURL
	}

	closeLog, err := setupLogger(cfg.Log.Path, cfg.Log.Format, cfg.Dev())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	database, err := db.Open(cfg.DB.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("database ready", "path", cfg.DB.Path)

	ctx := context.Background()
	jwtSecret, err := store.GetJWTSecret(ctx, database)
	if err != nil {
		slog.Error("failed to get JWT secret", "error", err)
		os.Exit(1)
	}
	sealKey, err := store.GetSealKey(ctx, database)
	if err != nil {
		slog.Error("failed to get seal key", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	backend, err := client.New(cfg.Backend.URL,
		client.WithHTTPClient(&http.Client{Timeout: cfg.Backend.Timeout}),
		client.WithObserver(m.ObserveBackend),
	)
	if err != nil {
		slog.Error("invalid backend url", "error", err)
		os.Exit(1)
	}

	carts := cart.NewStore()
	webRouter, err := web.NewRouter(web.Config{
		DB:         database,
		Backend:    backend,
		JWTSecret:  jwtSecret,
		SealKey:    sealKey,
		SessionTTL: cfg.Session.MaxAge,
		Metrics:    m,
		Secure:     cfg.Session.Secure,
		Carts:      carts,
	})
	if err != nil {
		slog.Error("failed to set up web router", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok\n"))
	})
	if cfg.Metrics.Enabled {
		mux.Handle("GET /metrics", m.Handler())
	}
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           web.LoggingMiddleware(m, mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go purgeSessions(purgeCtx, database, carts)

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())
		stopPurge()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.HTTP.Addr, "backend", cfg.Backend.URL, "env", cfg.App.Env)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing database")
}

// purgeSessions removes expired session revocations and the carts of expired
// sessions until ctx is done.
func purgeSessions(ctx context.Context, database *sql.DB, carts *cart.Store) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := carts.Purge(now); n > 0 {
				slog.Debug("purged expired carts", "count", n)
			}
			n, err := store.PurgeExpiredSessions(ctx, database, now)
			if err != nil {
				slog.Error("failed to purge sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Debug("purged expired sessions", "count", n)
			}
		}
	}
}
