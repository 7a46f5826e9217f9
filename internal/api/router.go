// Package api implements the HTTP API for triggering and inspecting
// briefing runs.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gobrief/internal/logger"
)

// SetupRouter creates and configures the Gin router with all routes.
func SetupRouter(log logger.Interface, handler *RunsHandler) *gin.Engine {
	// Disable Gin's default logging
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.GET("/runs", handler.ListRuns)
	v1.GET("/runs/:id", handler.GetRun)
	v1.GET("/runs/:id/deliveries", handler.ListDeliveries)
	v1.POST("/runs", handler.TriggerRun)

	return router
}

// loggingMiddleware creates a middleware that logs HTTP requests.
func loggingMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("HTTP Request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
