// Package server wires the geocoding proxy's Fiber application.
package server

import (
	"context"
	"log/slog"
	"time"

	"damagesnap/internal/cache"
	"damagesnap/internal/config"
	"damagesnap/internal/geocode"
	"damagesnap/internal/middleware"
	"damagesnap/internal/models"
	"damagesnap/internal/observability"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
)

const serviceName = "damagesnap-geocoder"

// Server holds the proxy's dependencies.
type Server struct {
	config         *config.Config
	redis          *redis.Client
	geocoder       *geocode.Service
	promMiddleware *fiberprometheus.FiberPrometheus
	app            *fiber.App
}

// NewServer builds a server. rdb may be nil, in which case geocoding is not
// cached and rate limiting fails open.
func NewServer(cfg *config.Config, rdb *redis.Client, geocoder *geocode.Service) *Server {
	return &Server{
		config:         cfg,
		redis:          rdb,
		geocoder:       geocoder,
		promMiddleware: middleware.InitMetrics(serviceName),
	}
}

// App returns the configured Fiber application, building it on first use.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}
	app := fiber.New(fiber.Config{
		AppName:   "DamageSnap Geocoder",
		BodyLimit: 64 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
				return models.RespondWithError(c, code, &models.AppError{Code: "HTTP_ERROR", Message: fe.Message})
			}
			observability.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, code, models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: s.config.AllowedOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		MaxAge:       86400,
	}))
}

// SetupRoutes registers the proxy's endpoints.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.Health)

	api := app.Group("/api")
	api.Post("/geocode",
		middleware.RateLimit(middleware.RateLimitConfig{
			Redis:    cache.Cmdable(s.redis),
			Limit:    s.config.GeocodeRateLimit,
			Window:   time.Minute,
			Policy:   middleware.FailOpen,
			Resource: "geocode",
			Disabled: rateLimitBypassed(s.config.Env),
		}),
		geocode.Handler(s.geocoder),
	)
}

// rateLimitBypassed keeps local and test workflows unthrottled.
func rateLimitBypassed(env string) bool {
	switch env {
	case "", "test", "development", "stress":
		return true
	}
	return false
}

// Health reports liveness and the state of Redis.
func (s *Server) Health(c *fiber.Ctx) error {
	redisState := "disabled"
	if s.redis != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), time.Second)
		defer cancel()
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisState = "unavailable"
		} else {
			redisState = "ok"
		}
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": serviceName,
		"redis":   redisState,
	})
}

// Start listens on the configured port until Shutdown.
func (s *Server) Start() error {
	app := s.App()
	observability.Logger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown stops the HTTP server and closes Redis.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			observability.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			observability.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}
	return nil
}
