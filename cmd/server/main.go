// Command server runs the pipeline stages behind a local HTTP API for development.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"image-pipeline/internal/config"
	"image-pipeline/internal/handlers"
	"image-pipeline/internal/middleware"
	"image-pipeline/pkg/server"
)

// maxRequestBytes bounds a stage event, which carries a whole base64 image
const maxRequestBytes = 20 << 20

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	// Initialize dependencies
	container, err := server.NewContainer(context.Background(), cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize container")
	}
	defer container.Close()

	logger := container.Logger

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.PerformanceMonitor(logger, 0))
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RateLimiter(logger, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	router.Use(middleware.RequestSizeLimit(maxRequestBytes))
	router.Use(middleware.ContentTypeValidation("application/json", "application/octet-stream", "image/png", "image/jpeg"))

	handlers.RegisterRoutes(router, handlers.NewPipelineHandler(container.Services(), container.ObjectStore))

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithFields(logrus.Fields{
		"port":           cfg.Port,
		"mode":           config.GetDeploymentMode(),
		"storage_type":   cfg.Storage.Type,
		"inference_type": cfg.Inference.Type,
		"endpoint":       cfg.Inference.EndpointName,
		"threshold":      cfg.Gate.ConfidenceThreshold,
	}).Info("Server started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
