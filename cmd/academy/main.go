// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command academy serves the Malumbo Academy website: the public site,
// the admin console and the JSON API backing both.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/malumbo/academy/internal/auth"
	"github.com/malumbo/academy/internal/cache"
	"github.com/malumbo/academy/internal/config"
	"github.com/malumbo/academy/internal/handler/api"
	"github.com/malumbo/academy/internal/middleware"
	"github.com/malumbo/academy/internal/scheduler"
	"github.com/malumbo/academy/internal/store"
	"github.com/malumbo/academy/internal/version"
	"github.com/malumbo/academy/web"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "academy - Malumbo Academy website server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ACADEMY_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ACADEMY_STORE_DRIVER      Storage backend: memory|sqlite|mysql (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ACADEMY_DB_PATH           SQLite database path (default: ./data/academy.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ACADEMY_MYSQL_DSN         MySQL DSN (mysql driver)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ACADEMY_AUTH_MODE         Admin auth: token|credentials (default: token)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ACADEMY_TOKEN_SECRET      Token signing secret (required in token mode, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ACADEMY_ADMIN_USERNAME    Admin username (default: admin)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ACADEMY_ADMIN_PASSWORD    Admin password\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ACADEMY_UPLOADS_DIR       Uploaded image directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ACADEMY_REDIS_URL         Redis URL for shared caching (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("academy %s (commit: %s, built: %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data and uploads directories exist before opening storage
	if cfg.StoreDriver == store.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	slog.Info("initializing storage", "driver", cfg.StoreDriver)
	st, err := store.Open(store.Config{
		Driver:     cfg.StoreDriver,
		SQLitePath: cfg.DBPath,
		MySQLDSN:   cfg.MySQLDSN,
	})
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("error closing storage", "error", err)
		}
	}()
	slog.Info("storage ready")

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, st, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return fmt.Errorf("seeding storage: %w", err)
		}
	}

	c := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	})
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	var tokens *auth.TokenManager
	if cfg.TokenAuth() {
		tokens = auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)
	}

	sched := scheduler.New(st, logger, cfg.MessageRetentionDays)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	apiHandler := api.NewHandler(st, c, tokens, cfg)

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/api", api.NewRouter(apiHandler, cfg, tokens))

	// Static assets from the embedded site
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Uploaded images from the configured directory
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	indexPage, err := fs.ReadFile(staticFS, "index.html")
	if err != nil {
		return fmt.Errorf("reading index page: %w", err)
	}
	adminPage, err := fs.ReadFile(staticFS, "admin.html")
	if err != nil {
		return fmt.Errorf("reading admin page: %w", err)
	}
	servePage := func(page []byte) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write(page)
		}
	}
	r.Get("/", servePage(indexPage))
	r.Get("/admin", servePage(adminPage))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "auth_mode", cfg.AuthMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
