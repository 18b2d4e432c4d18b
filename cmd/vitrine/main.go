// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/olegiv/vitrine/internal/chat"
	"github.com/olegiv/vitrine/internal/config"
	"github.com/olegiv/vitrine/internal/handler"
	"github.com/olegiv/vitrine/internal/i18n"
	"github.com/olegiv/vitrine/internal/middleware"
	"github.com/olegiv/vitrine/internal/scheduler"
	"github.com/olegiv/vitrine/internal/session"
	"github.com/olegiv/vitrine/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// maxBodyBytes caps request bodies. The API only accepts small JSON payloads.
const maxBodyBytes = 1 << 20 // 1MB

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "vitrine - marketing website backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINE_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINE_DB_PATH           SQLite database path (default: ./data/vitrine.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINE_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINE_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINE_ALLOWED_ORIGINS   CORS origins for the SPA client (comma-separated)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINE_REDIS_URL         Redis URL for a shared rate-limit store (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OPENAI_API_KEY            Enables the AI chat endpoint (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("vitrine %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
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

	// Setup logger
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

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Seed the default section and hero rows. Only missing rows are
	// inserted, so admin edits survive restarts.
	ctx := context.Background()
	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	// Initialize session manager
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized", "lifetime", session.Lifetime)

	// Rate-limit counter store: Redis when configured, in-memory otherwise.
	var counterStore middleware.CounterStore
	var memoryStore *middleware.MemoryCounterStore
	if cfg.UseRedisLimiter() {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parsing redis url: %w", err)
		}
		counterStore = middleware.NewRedisCounterStore(redis.NewClient(opt))
		slog.Info("rate limiter initialized", "backend", "redis")
	} else {
		memoryStore = middleware.NewMemoryCounterStore()
		counterStore = memoryStore
		slog.Info("rate limiter initialized", "backend", "memory")
	}

	// Default limiter covers the whole API surface; the strict limiter
	// guards the expensive and abusable endpoints.
	rateLimiter := middleware.NewRateLimiter(counterStore, cfg.RateLimitMax, time.Minute, "rl")
	strictLimiter := middleware.NewRateLimiter(counterStore, cfg.StrictLimitMax, 15*time.Minute, "strict")

	// Per-IP login throttle, on top of the persistent account lockout
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized",
		"ip_rate_limit", "0.5 req/s",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	// Chat service (optional)
	var chatService *chat.Service
	if cfg.ChatEnabled() {
		chatService, err = chat.NewService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			return fmt.Errorf("initializing chat service: %w", err)
		}
		slog.Info("chat service initialized", "model", cfg.OpenAIModel)
	} else {
		slog.Info("chat service disabled: no API key configured")
	}

	// Initialize and start scheduler. Redis counters expire on their
	// own, so only the memory store needs sweeping.
	var sweeper scheduler.Sweeper
	if memoryStore != nil {
		sweeper = memoryStore
	}
	sched := scheduler.New(db, logger, sweeper, loginProtection)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(db, sessionManager, cfg.IsDevelopment())
	blogHandler := handler.NewBlogHandler(db, sessionManager)
	templateHandler := handler.NewTemplateHandler(db, sessionManager)
	caseStudyHandler := handler.NewCaseStudyHandler(db, sessionManager)
	trainingHandler := handler.NewTrainingHandler(db, sessionManager)
	sectionHandler := handler.NewSectionHandler(db)
	settingsHandler := handler.NewSettingsHandler(db)
	intakeHandler := handler.NewIntakeHandler(db)
	chatHandler := handler.NewChatHandler(chatService)
	healthHandler := handler.NewHealthHandler(db, sessionManager)
	devHandler := handler.NewDevHandler(rateLimiter, strictLimiter)

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))
	slog.Info("security headers middleware initialized", "hsts", !cfg.IsDevelopment())

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.AllowedOrigins))
		slog.Info("CORS middleware initialized", "origins", cfg.AllowedOrigins)
	}

	r.Use(sessionManager.LoadAndSave)

	// CSRF protects every unsafe request except the public intake
	// endpoints, which the SPA calls before it holds a token.
	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	r.Use(middleware.SkipCSRF(
		"/api/contact",
		"/api/newsletter",
		"/api/chat",
		"/api/admin/setup",
		"/api/admin/login",
		"/api/admin/forgot-password",
		"/api/admin/reset-password",
	))
	r.Use(middleware.CSRF(csrfConfig))
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	r.Use(middleware.MaxRequestBody(maxBodyBytes))

	// Health check routes (public, more detail for authenticated callers)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimiter.Middleware)

		r.Get("/csrf-token", handler.CSRFToken)

		// Auth routes. The strict limiter and the login throttle stack
		// on top of the account lockout persisted in the database.
		r.Route("/admin", func(r chi.Router) {
			r.With(strictLimiter.Middleware).Post("/setup", authHandler.Setup)
			r.With(strictLimiter.Middleware, loginProtection.Middleware).Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
			r.With(strictLimiter.Middleware).Post("/forgot-password", authHandler.ForgotPassword)
			r.Get("/reset-password/{token}", authHandler.CheckResetToken)
			r.With(strictLimiter.Middleware).Post("/reset-password", authHandler.ResetPassword)
			r.With(strictLimiter.Middleware, middleware.RequireAuth(sessionManager)).Post("/change-password", authHandler.ChangePassword)
		})

		// Public content reads
		r.Get("/blog-posts", blogHandler.List)
		r.Get("/blog-posts/{id}", blogHandler.Get)
		r.Get("/blog-posts/slug/{slug}", blogHandler.GetBySlug)
		r.Get("/templates", templateHandler.List)
		r.Get("/templates/{id}", templateHandler.Get)
		r.Get("/templates/slug/{slug}", templateHandler.GetBySlug)
		r.Get("/case-studies", caseStudyHandler.List)
		r.Get("/case-studies/{id}", caseStudyHandler.Get)
		r.Get("/case-studies/slug/{slug}", caseStudyHandler.GetBySlug)
		r.Get("/trainings", trainingHandler.List)
		r.Get("/trainings/{id}", trainingHandler.Get)
		r.Get("/trainings/slug/{slug}", trainingHandler.GetBySlug)
		r.Get("/services", sectionHandler.ListServices)
		r.Get("/why-us", sectionHandler.ListWhyUs)
		r.Get("/section-settings", settingsHandler.ListSections)
		r.Get("/section-settings/{key}", settingsHandler.GetSection)
		r.Get("/hero-settings", settingsHandler.ListHeroes)
		r.Get("/hero-settings/{pageKey}", settingsHandler.GetHero)

		// Public intake
		r.With(strictLimiter.Middleware).Post("/contact", intakeHandler.Contact)
		r.With(strictLimiter.Middleware).Post("/newsletter", intakeHandler.Subscribe)
		r.With(strictLimiter.Middleware).Post("/chat", chatHandler.Ask)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(sessionManager))

			r.Post("/blog-posts", blogHandler.Create)
			r.Put("/blog-posts/{id}", blogHandler.Update)
			r.Delete("/blog-posts/{id}", blogHandler.Delete)

			r.Post("/templates", templateHandler.Create)
			r.Put("/templates/{id}", templateHandler.Update)
			r.Delete("/templates/{id}", templateHandler.Delete)

			r.Post("/case-studies", caseStudyHandler.Create)
			r.Put("/case-studies/{id}", caseStudyHandler.Update)
			r.Delete("/case-studies/{id}", caseStudyHandler.Delete)

			r.Post("/trainings", trainingHandler.Create)
			r.Put("/trainings/{id}", trainingHandler.Update)
			r.Delete("/trainings/{id}", trainingHandler.Delete)

			r.Post("/services", sectionHandler.CreateService)
			r.Put("/services/{id}", sectionHandler.UpdateService)
			r.Delete("/services/{id}", sectionHandler.DeleteService)

			r.Post("/why-us", sectionHandler.CreateWhyUs)
			r.Put("/why-us/{id}", sectionHandler.UpdateWhyUs)
			r.Delete("/why-us/{id}", sectionHandler.DeleteWhyUs)

			r.Put("/section-settings/{key}", settingsHandler.UpsertSection)
			r.Put("/hero-settings/{pageKey}", settingsHandler.UpsertHero)

			r.Get("/contact-submissions", intakeHandler.ListSubmissions)
			r.Get("/newsletter-subscribers", intakeHandler.ListSubscribers)
		})

		// Development helpers
		if cfg.IsDevelopment() {
			r.Post("/dev/rate-limit/reset", devHandler.ResetRateLimit)
		}
	})

	// JSON envelopes for unmatched routes and methods
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelopeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelopeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      75 * time.Second, // Longer than the chat completion timeout
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
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

func writeEnvelopeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = fmt.Fprintf(w, `{"success":false,"error":{"message":%q}}`, message)
}
