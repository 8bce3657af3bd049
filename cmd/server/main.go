package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/apparel-site-api/internal/api"
	"github.com/apparel-site-api/internal/cache"
	"github.com/apparel-site-api/internal/config"
	"github.com/apparel-site-api/internal/database"
	"github.com/apparel-site-api/internal/media"
	"github.com/apparel-site-api/internal/repository"
	"github.com/apparel-site-api/internal/service"
	"github.com/apparel-site-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New(os.Getenv("APP_ENV"), "info")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Env, cfg.Log.Level)
	log.Info().Msg("Starting apparel site API server...")
	if cfg.IsDevelopment() {
		cfg.LogSummary(log)
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Optional article cache
	if cfg.Cache.RedisURL != "" {
		client, err := cache.NewRedisClient(context.Background(), cfg.Cache.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, serving articles without cache")
		} else {
			defer client.Close()
			repos.Article = repository.NewCachedArticleRepo(repos.Article, client, cfg.Cache.TTL, log)
			log.Info().Dur("ttl", cfg.Cache.TTL).Msg("Article cache enabled")
		}
	}

	// Initialize media store
	store, err := media.NewCloudinaryStore(cfg.Media, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure media store")
	}

	// Initialize services
	services := service.NewServices(repos, store, cfg, log)

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server exited gracefully")
}
