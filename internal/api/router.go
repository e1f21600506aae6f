package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mutaaf/ramadan-guide-sub002/internal/auth"
	"github.com/mutaaf/ramadan-guide-sub002/internal/config"
	"github.com/mutaaf/ramadan-guide-sub002/internal/service"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, verifier *auth.TokenVerifier, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	generationHandler := NewGenerationHandler(services, log)
	regenerateHandler := NewRegenerateHandler(services, log)
	publishHandler := NewPublishHandler(services, log)
	catalogHandler := NewCatalogHandler(services, log)
	authHandler := NewAuthHandler(verifier, log)

	// Health check
	router.GET("/health", healthCheck)

	// API v1
	v1 := router.Group("/v1")
	{
		v1.POST("/auth/verify-token", authHandler.VerifyToken)

		catalog := v1.Group("/catalog")
		{
			catalog.GET("/index", catalogHandler.GetIndex)
			catalog.GET("/series/:series_id", catalogHandler.GetSeriesData)
		}

		// Everything below changes content and requires the admin credential
		admin := v1.Group("")
		admin.Use(adminAuthMiddleware(verifier, log))
		{
			admin.POST("/scholars", catalogHandler.CreateScholar)
			admin.POST("/series", catalogHandler.CreateSeries)
			admin.POST("/series/:series_id/episodes", catalogHandler.CreateEpisode)

			admin.POST("/episodes/:episode_id/generate", generationHandler.Generate)
			admin.GET("/episodes/:episode_id/generation", generationHandler.GetStatus)
			admin.POST("/episodes/:episode_id/generation/retry", generationHandler.Retry)

			admin.POST("/companions/regenerate-section", regenerateHandler.RegenerateSection)
			admin.POST("/publish", publishHandler.Publish)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "companion-pipeline",
	})
}

// adminAuthMiddleware requires a valid bearer credential on every request it
// guards. A missing server secret is reported as a 500, never a 401.
func adminAuthMiddleware(verifier *auth.TokenVerifier, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if err := verifier.Verify(token); err != nil {
			respondError(c, log, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
