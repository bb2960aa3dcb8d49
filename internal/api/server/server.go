package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "wavify/docs" // Generated swagger docs
	"wavify/internal/api/middleware"
	v1routes "wavify/internal/api/v1/routes"
	"wavify/internal/app/metrics"
	"wavify/internal/config"
)

// Server represents the API server
type Server struct {
	config     config.HTTPConfig
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
	errs       chan error
}

// NewServer creates a new API server
func NewServer(cfg config.HTTPConfig, container *v1routes.ServiceContainer, logger *zap.Logger) *Server {
	logger = logger.With(zap.String("component", "server"))

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.Environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	router := gin.New()
	// uploads within the limit stay in memory until the pipeline writes them
	// into the request workspace
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(metrics.GinMiddleware())
	router.Use(middleware.BodyLimit(cfg.MaxUploadBytes))

	if container.MaxUploadBytes == 0 {
		container.MaxUploadBytes = cfg.MaxUploadBytes
	}
	v1routes.RegisterRoutes(router, container)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", func(c *gin.Context) {
		info := gin.H{
			"message":       "wavify audio conversion API",
			"version":       "1.0",
			"documentation": "/swagger/index.html",
			"endpoints": gin.H{
				"convert":     "/convert",
				"conversions": "/api/v1/conversions",
				"health":      "/health",
				"metrics":     "/metrics",
			},
		}
		if container.ConversionService != nil {
			info["mode"] = container.ConversionService.Mode()
			info["accepted_extensions"] = container.ConversionService.AcceptedExtensions()
		}
		c.JSON(http.StatusOK, info)
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		config:     cfg,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
		errs:       make(chan error, 1),
	}
}

// Start binds the listen address and serves in the background. Bind errors
// are returned; later serve errors are delivered on Errors.
func (s *Server) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.httpServer.Addr),
		zap.String("environment", s.config.Environment),
	)

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server stopped", zap.Error(err))
			s.errs <- err
		}
		close(s.errs)
	}()

	s.logger.Info("API server started", zap.String("address", ln.Addr().String()))
	return nil
}

// Errors reports a serve failure after Start. It is closed once the server
// stops.
func (s *Server) Errors() <-chan error {
	return s.errs
}

// Shutdown stops accepting connections and waits for in-flight conversions
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
