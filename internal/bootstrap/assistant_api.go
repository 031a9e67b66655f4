// Package bootstrap wires configuration, adapters, and services into a
// runnable Fiber application.
package bootstrap

import (
	"strings"
	"time"

	"assistant_server/adapter/in/http"
	"assistant_server/config"
	"assistant_server/infra/middleware"
	"assistant_server/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// NewAPI builds the HTTP application. The returned cleanup function closes
// shared clients and must be called after shutdown.
func NewAPI(cfg *config.Config) (*fiber.App, func(), error) {
	logLevel := logger.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = logger.LevelDebug
	}
	logger.Init(logger.Config{
		Level:   logLevel,
		Service: "email-assistant",
	})

	deps, cleanup, err := NewDependencies(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize dependencies")
		return nil, nil, err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),

		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		// Email drafts are small; anything bigger is not a draft.
		BodyLimit: 1 * 1024 * 1024,
	})

	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// The extension runs inside mail.google.com / outlook pages, so those
	// origins must be allowed explicitly.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		ExposeHeaders:    "X-Request-ID,X-RateLimit-Limit,X-RateLimit-Remaining",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	healthHandler := http.NewHealthHandler()
	suggestionHandler := http.NewSuggestionHandler(deps.SuggestionService)
	meetingHandler := http.NewMeetingHandler(deps.MeetingService)
	eventHandler := http.NewEventHandler(deps.EventService)

	// Legacy root-level routes. The extension's scripts POST to these paths
	// directly and they stay open.
	healthHandler.Register(app)
	suggestionHandler.Register(app)
	meetingHandler.Register(app)
	eventHandler.Register(app)

	// Versioned group with rate limiting and optional auth for non-extension
	// clients.
	api := app.Group("/api/v1")

	rateLimiter := middleware.NewRateLimiter(deps.Redis, cfg.RateLimitPerMinute, time.Minute)
	api.Use(rateLimiter.Handler())
	api.Use(middleware.JWTAuth(cfg.JWTSecret))

	suggestionHandler.Register(api)
	meetingHandler.Register(api)
	eventHandler.Register(api)

	fullCleanup := func() {
		rateLimiter.Close()
		cleanup()
	}
	return app, fullCleanup, nil
}
