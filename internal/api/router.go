package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/apparel-site-api/internal/config"
	"github.com/apparel-site-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// multipartOverhead is allowed on top of the file size limit for form fields and boundaries
const multipartOverhead = 1 << 20

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// Gallery publicIds contain slashes; clients send them percent-encoded and
	// the handlers decode them.
	router.UseRawPath = true
	router.UnescapePathValues = false

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(bodyLimitMiddleware(cfg.Upload.MaxFileSize + multipartOverhead))

	// Handlers
	articleHandler := NewArticleHandler(services, cfg, log)
	catalogueHandler := NewCatalogueHandler(services, cfg, log)
	messageHandler := NewMessageHandler(services, cfg, log)
	galleryHandler := NewGalleryHandler(services, cfg, log)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)
		api.GET("/health/media", mediaHealthCheck(services, log))
		api.GET("/metrics", metricsHandler(services, log))

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.List)
			articles.GET("/:identifier", articleHandler.Get)
			articles.POST("", articleHandler.Create)
			articles.POST("/upload-image", articleHandler.UploadImage)
			articles.PUT("/:id", articleHandler.Update)
			articles.DELETE("/:id", articleHandler.Delete)
		}

		catalogue := api.Group("/catalogue")
		{
			catalogue.GET("", catalogueHandler.List)
			catalogue.POST("/upload", catalogueHandler.Upload)
			catalogue.DELETE("/:id", catalogueHandler.Delete)
		}

		messages := api.Group("/messages")
		{
			messages.POST("", messageHandler.Create)
			messages.GET("", messageHandler.List)
			messages.PATCH("/:id/status", messageHandler.UpdateStatus)
			messages.DELETE("/:id", messageHandler.Delete)
		}

		gallery := api.Group("/gallery")
		{
			gallery.GET("/images", galleryHandler.List)
			gallery.POST("/upload", galleryHandler.Upload)
			gallery.DELETE("/images", galleryHandler.DeleteAll)
			gallery.DELETE("/images/:publicId", galleryHandler.Delete)
			gallery.PATCH("/images/:publicId", galleryHandler.UpdateMetadata)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"status":    "ok",
		"message":   "Server is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// mediaHealthCheck verifies the media-store credentials with a small search
func mediaHealthCheck(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		probe, err := services.Gallery.Probe(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("Media store probe failed")
			respondError(c, http.StatusInternalServerError, "Media store connection failed", err.Error())
			return
		}
		respondData(c, http.StatusOK, probe, "Media store connection successful")
	}
}

// metricsHandler returns document counts
func metricsHandler(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := services.Metrics.Stats(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("Failed to collect metrics")
			respondError(c, http.StatusInternalServerError, "Failed to collect metrics", err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"database":  stats,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				respondError(c, http.StatusInternalServerError, "Internal server error", nil)
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

// corsMiddleware allows the configured origins; "*" allows any
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowed["*"] || allowed[origin]) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// bodyLimitMiddleware caps request bodies; reads past the limit fail
func bodyLimitMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
