// Package main is the entrypoint for the Releaf API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/releaf/releaf/internal/cache"
	"github.com/releaf/releaf/internal/config"
	"github.com/releaf/releaf/internal/handler"
	"github.com/releaf/releaf/internal/metrics"
	"github.com/releaf/releaf/internal/middleware"
	"github.com/releaf/releaf/internal/repository"
	"github.com/releaf/releaf/internal/server"
	"github.com/releaf/releaf/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	metricsRecorder := metrics.NewInMemory()
	memoService := service.NewMemoService(repo, metricsRecorder)
	userService := service.NewUserService(repo, cacheClient, metricsRecorder)

	healthHandler := handler.NewHealthHandler(repo, cacheClient, userService)
	memoHandler := handler.NewMemoHandler(memoService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)

	var limiter handler.LoginRateLimiter
	if cfg.LoginRateLimitEnabled {
		limiter = cacheClient
	}
	authHandler := handler.NewAuthHandler(handler.AuthHandlerConfig{
		Users:       userService,
		Limiter:     limiter,
		Logger:      logger,
		Secret:      []byte(cfg.JWTSecret),
		TokenTTL:    cfg.JWTTTL,
		MaxAttempts: cfg.LoginMaxAttempts,
	})

	r := setupRouter(routerDeps{
		health:  healthHandler,
		memos:   memoHandler,
		users:   userHandler,
		auth:    authHandler,
		metrics: metricsHandler,
		repo:    repo,
		cache:   cacheClient,
		rec:     metricsRecorder,
		cfg:     cfg,
		logger:  logger,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

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

type routerDeps struct {
	health  *handler.HealthHandler
	memos   *handler.MemoHandler
	users   *handler.UserHandler
	auth    *handler.AuthHandler
	metrics *handler.MetricsHandler
	repo    *repository.Repository
	cache   *cache.Cache
	rec     metrics.Recorder
	cfg     *config.Config
	logger  *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: d.cfg.IsDevelopment()}))
	r.Use(middleware.MaxBodySize(d.cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = d.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Public endpoints
	r.Get("/", handler.Home)
	r.Get("/health", d.health.Health)
	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)
	r.Get("/metrics", d.metrics.Metrics)

	authCfg := middleware.AuthConfig{
		Logger:  d.logger,
		Secret:  []byte(d.cfg.JWTSecret),
		Users:   d.repo,
		Cache:   d.cache,
		Metrics: d.rec,
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public: account creation and login
		r.Post("/users", d.users.Register)
		r.Post("/auth/login", d.auth.Login)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))

			r.Route("/memos", func(r chi.Router) {
				r.Get("/", d.memos.List)
				r.Post("/", d.memos.Create)
				r.Get("/{id}", d.memos.Get)
				r.Put("/{id}", d.memos.Update)
				r.Delete("/{id}", d.memos.Delete)
			})

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", d.users.Me)
				r.Put("/email", d.users.UpdateEmail)
				r.Put("/password", d.users.UpdatePassword)
				r.Delete("/", d.users.Delete)
			})
		})
	})

	// 404 and 405 handlers
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
