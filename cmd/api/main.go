// Package main is the entrypoint for the user API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/usersvc/usersvc/internal/config"
	"github.com/usersvc/usersvc/internal/handler"
	"github.com/usersvc/usersvc/internal/metrics"
	"github.com/usersvc/usersvc/internal/middleware"
	"github.com/usersvc/usersvc/internal/server"
	"github.com/usersvc/usersvc/internal/service"
	"github.com/usersvc/usersvc/internal/store"
)

func main() {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if cfg.DatabaseURL != "" {
		logger.Warn("DATABASE_URL is set but persistence is not enabled; using in-memory store")
	}

	// Initialize the in-memory store and seed demo data
	clock := clockwork.NewRealClock()
	userStore := store.New(clock)
	if err := seedUsers(context.Background(), userStore); err != nil {
		logger.Error("failed to seed users", "error", err)
		os.Exit(1)
	}

	// Initialize services
	userService := service.NewUserService(userStore, metrics.NewNoop())

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(clock)
	userHandler := handler.NewUserHandler(userService, logger)

	r := setupRouter(h, healthHandler, userHandler, cfg, logger)

	srv := server.New(
		r,
		cfg.Addr(),
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"app", cfg.AppName,
		"addr", cfg.Addr(),
		"debug", cfg.Debug,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutting down", "app", cfg.AppName)
}

// seedUsers inserts the demo users. They occupy ids 1 and 2, so the
// first user created through the API gets id 3.
func seedUsers(ctx context.Context, s *store.Store) error {
	seeds := []struct {
		name  string
		email string
	}{
		{"Alice Johnson", "alice@example.com"},
		{"Bob Smith", "bob@example.com"},
	}

	for _, seed := range seeds {
		if _, err := s.CreateUser(ctx, seed.name, seed.email); err != nil {
			return err
		}
	}
	return nil
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	userHandler *handler.UserHandler,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{Debug: cfg.Debug}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Informational endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/", h.Root)

	// User CRUD
	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Create)
		r.Get("/{id}", userHandler.Get)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
