// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

// Command edunews runs the Donga Education News web server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/dongaedu/edunews/internal/config"
	"github.com/dongaedu/edunews/internal/handler"
	"github.com/dongaedu/edunews/internal/i18n"
	"github.com/dongaedu/edunews/internal/logging"
	"github.com/dongaedu/edunews/internal/middleware"
	"github.com/dongaedu/edunews/internal/render"
	"github.com/dongaedu/edunews/internal/repo"
	"github.com/dongaedu/edunews/internal/scheduler"
	"github.com/dongaedu/edunews/internal/session"
	"github.com/dongaedu/edunews/internal/store"
	"github.com/dongaedu/edunews/web"
)

const version = "1.0.0"

const shutdownTimeout = 10 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("edunews %s\n", version)
		return
	}

	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.IsDevelopment())
	slog.SetDefault(logger)

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	// Route WARN and above into the events table now that the schema exists.
	logger = slog.New(logging.NewEventLogHandler(logger.Handler(), db))
	slog.SetDefault(logger)

	if cfg.DoSeed {
		if err := store.Seed(context.Background(), db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	catalog, err := i18n.New(cfg.DefaultLang, logger)
	if err != nil {
		return fmt.Errorf("loading translations: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS: web.Templates,
		Catalog:     catalog,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	sessions := session.New(db, cfg.IsDevelopment())

	h := handler.New(handler.Config{
		Renderer:    renderer,
		Catalog:     catalog,
		Logger:      logger,
		Sessions:    sessions,
		Articles:    repo.NewArticles(store.NewArticles(db)),
		Subscribers: repo.NewSubscribers(store.NewSubscribers(db)),
		Media:       store.NewMedia(db),
		Users:       store.NewUsers(db),
		SiteName:    cfg.SiteName,
	})

	if cfg.EnableScheduler {
		sched := scheduler.New(db, logger)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		defer sched.Stop()
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	csrf := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(sessions.LoadAndSave)

	r.Get("/", h.Home)
	r.Get("/articles", h.Articles)
	r.Get("/articles/{slug}", h.Article)
	r.Get("/a/{legacyId}", h.LegacyArticle)
	r.Get("/category/{slug}", h.Category)
	r.Get("/region/{slug}", h.Region)
	r.Get("/search", h.Search)
	r.Get("/healthz", h.Health)

	r.Get("/subscribe/verify", h.SubscribeVerify)
	r.With(csrf, limiter.Limit).Post("/subscribe", h.Subscribe)
	r.With(csrf, limiter.Limit).Post("/unsubscribe", h.Unsubscribe)

	r.Route("/admin/api", func(r chi.Router) {
		r.With(limiter.Limit).Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(sessions))
			r.Post("/logout", h.Logout)
			r.Get("/articles", h.AdminListArticles)
			r.Post("/articles", h.AdminCreateArticle)
			r.Get("/articles/{id}", h.AdminGetArticle)
			r.Put("/articles/{id}", h.AdminUpdateArticle)
			r.Delete("/articles/{id}", h.AdminDeleteArticle)
			r.Post("/media", h.AdminCreateMedia)
			r.Get("/subscribers", h.AdminListSubscribers)
		})
	})

	r.NotFound(h.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Env, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
