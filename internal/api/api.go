// Package api exposes the scanner over HTTP.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/shivam1584818/fb-group-finder-backend/internal/config"
)

const readHeaderTimeout = 10 * time.Second

// SetupRouter builds the gin engine. guard may be nil.
func SetupRouter(cfg config.ServerConfig, s Scanner, guard AdmissionGuard, logger zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	apiLogger := logger.With().Str("component", "API").Logger()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(apiLogger))
	router.Use(corsMiddleware())

	router.GET("/health", handleHealth)

	protected := router.Group("/")
	protected.Use(apiKeyMiddleware(cfg.APIKey))
	protected.Use(bodyLimitMiddleware(cfg.MaxBodyBytes))
	protected.POST("/scan", handleScan(s, guard, apiLogger))

	return router
}

// NewHTTPServer wraps router in a server listening on cfg.Port.
// No write timeout is set; scans are bounded by their own deadline.
func NewHTTPServer(cfg config.ServerConfig, router http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
