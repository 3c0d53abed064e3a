// Package server exposes dataset generation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/datasynth/internal/config"
	"github.com/tensorplex-labs/datasynth/internal/export"
)

// NewServer creates the HTTP server. A nil serverConfig uses defaults.
func NewServer(serverConfig *config.ServerEnvConfig, apiKey string, gen DatasetGenerator, files export.TempFiles) *Server {
	if serverConfig == nil {
		serverConfig = &config.ServerEnvConfig{
			Host:             DefaultServerHost,
			Port:             DefaultServerPort,
			BodySizeLimit:    DefaultBodyLimit,
			CORSAllowOrigins: "http://localhost:3000",
			MetricsEnabled:   true,
		}
	}
	if serverConfig.BodySizeLimit <= 0 {
		serverConfig.BodySizeLimit = DefaultBodyLimit
	}
	if apiKey == "" {
		log.Warn().Msg("API_KEY is empty - every authenticated route will answer 401")
	}

	log.Info().
		Str("host", serverConfig.Host).
		Int("port", serverConfig.Port).
		Int("body_limit", serverConfig.BodySizeLimit).
		Bool("metrics", serverConfig.MetricsEnabled).
		Msg("Server configuration loaded")

	app := fiber.New(fiber.Config{
		AppName:               AppName,
		Prefork:               false,
		DisableStartupMessage: true,
		ErrorHandler:          fiberErrHandler,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           jsonAPI.Unmarshal,
		BodyLimit:             serverConfig.BodySizeLimit,
	})

	app.Use(recover.New()) // add panic recovery
	app.Use(corsMiddleware(serverConfig.CORSAllowOrigins))
	app.Use(RequestLogMiddleware())

	server := &Server{
		App:       app,
		config:    serverConfig,
		apiKey:    apiKey,
		generator: gen,
		files:     files,
		openapi:   BuildOpenAPISpec(),
	}

	// Key check first: rejected requests never get their body inflated.
	whitelistedRoutes := []string{"/", "/health", "/metrics"}
	app.Use(APIKeyMiddleware(apiKey, whitelistedRoutes))
	app.Use(ZstdMiddleware(serverConfig.BodySizeLimit, []string{"/metrics"}))

	server.registerRoutes()
	return server
}

func corsMiddleware(origins string) fiber.Handler {
	origins = strings.TrimSpace(origins)
	if origins == "" {
		origins = "http://localhost:3000"
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Content-Encoding,Accept-Encoding," + APIKeyHeader,
		// Credentialed requests cannot be combined with a wildcard origin.
		AllowCredentials: origins != "*",
		ExposeHeaders:    fiber.HeaderContentDisposition,
	})
}

func (s *Server) registerRoutes() {
	s.App.Get("/", s.handleRoot)
	s.App.Get("/health", s.handleHealth)
	if s.config.MetricsEnabled {
		s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	s.App.Get("/docs", s.handleSwaggerUI)
	s.App.Get("/redoc", s.handleRedoc)
	s.App.Get("/openapi.json", s.handleOpenAPI)

	api := s.App.Group("/api/v1")
	api.Post("/generate", s.handleGenerate)
}

func fiberErrHandler(ctx *fiber.Ctx, err error) error {
	// Status code defaults to 500 and the message never carries internals
	code := fiber.StatusInternalServerError
	message := internalErrorMessage

	// Retrieve the custom status code if it's a *fiber.Error
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	event := log.Warn()
	if code >= fiber.StatusInternalServerError {
		event = log.Error()
	}
	event.
		Err(err).
		Int("status_code", code).
		Str("path", ctx.Path()).
		Str("method", ctx.Method()).
		Msg("Fiber error handler triggered")

	return ctx.Status(code).JSON(createResponse(map[string]interface{}{}, errors.New(message)))
}

// Start listens until ctx is cancelled, then shuts the app down.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", addr).Msg("Server listening")
		errCh <- s.App.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}
	return s.Shutdown(5 * time.Second)
}

func (s *Server) Shutdown(timeout time.Duration) error {
	return s.App.ShutdownWithTimeout(timeout)
}
