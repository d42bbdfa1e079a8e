package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/flexinets/fortnox-gateway/internal/adapter/handler/http"
	"github.com/flexinets/fortnox-gateway/internal/config"
	"github.com/flexinets/fortnox-gateway/internal/infrastructure/secrets"
)

type Server struct {
	config      *config.Config
	logger      *zap.Logger
	echo        *echo.Echo
	secretStore secrets.Store
}

func NewServer(cfg *config.Config, logger *zap.Logger, secretStore secrets.Store) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	return &Server{
		config:      cfg,
		logger:      logger,
		echo:        e,
		secretStore: secretStore,
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

	webhookHandler := handlers.NewWebhookHandler(s.logger, s.config, s.secretStore)
	s.echo.POST("/webhook", webhookHandler.HandleWebhook)
}
