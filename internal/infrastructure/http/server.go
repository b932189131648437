package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"

	handlers "github.com/dealsignal/callintake/internal/adapter/handler/http"
	"github.com/dealsignal/callintake/internal/adapter/provider"
	"github.com/dealsignal/callintake/internal/config"
	"github.com/dealsignal/callintake/internal/infrastructure/database"
	"github.com/dealsignal/callintake/internal/middleware/auth"
	"github.com/dealsignal/callintake/internal/platform/logger"
	"github.com/dealsignal/callintake/internal/usecase"
)

// Server hosts the webhook endpoints and the read API.
type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories
	events usecase.EventPublisher
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// NewServer wires middleware, handlers and routes.
func NewServer(cfg *config.Config, zapLogger *zap.Logger, repos *database.Repositories, events usecase.EventPublisher) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.OFF)
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logger.NewEchoRequestLogger(zapLogger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST},
	}))
	if cfg.Server.HTTP.RequestTimeout > 0 {
		// Webhook processing must finish well inside the provider's own
		// delivery timeout; anything slower should fail and be retried.
		e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
			Timeout: cfg.Server.HTTP.RequestTimeout,
		}))
	}

	return &Server{
		config: cfg,
		logger: zapLogger,
		echo:   e,
		repos:  repos,
		events: events,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Intake pipeline
	resolver := usecase.NewIdentityResolver(s.repos.User, s.logger)
	matcher := usecase.NewDuplicateMatcher(s.repos.CallRecord, s.config.Intake.MatchTolerance, s.logger)
	intake := usecase.NewIntakeService(resolver, matcher, s.repos.CallRecord, s.events, s.config.Intake.EventChannel, s.logger)

	registry := provider.NewRegistry()
	webhookHandler := handlers.NewWebhookHandler(s.logger, registry, s.repos.User, s.repos.WebhookDelivery, intake)
	callHandler := handlers.NewCallHandler(s.logger, s.repos.CallRecord)

	// Webhook routes (outside API versioning; authenticated by the userId
	// path segment the customer registered with the provider)
	s.echo.POST("/webhooks/:provider/:userId", webhookHandler.Handle)

	// JWT-protected read API
	jwtConfig := auth.JWTConfig{
		Secret: s.config.JWT.Secret,
		Logger: s.logger,
	}

	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig))
	v1.GET("/calls", callHandler.ListCalls)
	v1.GET("/calls/:id", callHandler.GetCall)
}
