// Package http provides the HTTP servers: the codec API with its probes and
// the separate Prometheus metrics endpoint.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/uids/internal/config"
	"github.com/allisson/uids/internal/metrics"
	uidHTTP "github.com/allisson/uids/internal/uid/http"
	uidService "github.com/allisson/uids/internal/uid/service"
)

// Server is the codec API server.
type Server struct {
	listener
	router       *gin.Engine
	pool         *uidService.ContextPool
	shuttingDown atomic.Bool
}

// NewServer creates the API server. pool backs the readiness probe; a nil pool
// reports not ready.
func NewServer(pool *uidService.ContextPool, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		listener: newListener("http server", host, port, logger),
		pool:     pool,
	}
}

// SetupRouter registers middleware and routes. ctx bounds background work
// started by middleware, such as rate limiter cleanup.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	uidHandler *uidHTTP.UidHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			metricsProvider.MeterProvider(),
			metricsProvider.Namespace(),
			"/health",
			"/ready",
		))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1/uids")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	{
		v1.POST("/encode", uidHandler.EncodeHandler)
		v1.POST("/decode", uidHandler.DecodeHandler)
		v1.POST("/encode/batch", uidHandler.EncodeBatchHandler)
		v1.POST("/decode/batch", uidHandler.DecodeBatchHandler)
		v1.GET("/variants", uidHandler.ListVariantsHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router is not configured")
	}
	return s.serve(s.router)
}

// Shutdown fails the readiness probe, then drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shuttingDown.Store(true)
	return s.shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready while the cipher pool exists and the server
// is not draining.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.pool == nil || s.shuttingDown.Load() {
		status := "error"
		if s.shuttingDown.Load() {
			status = "shutting_down"
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"cipher_pool": status},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"components": gin.H{
			"cipher_pool":   "ok",
			"pool_size":     s.pool.Size(),
			"idle_contexts": s.pool.Available(),
		},
	})
}
