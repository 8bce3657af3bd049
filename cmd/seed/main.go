package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/apparel-site-api/internal/config"
	"github.com/apparel-site-api/internal/database"
	"github.com/apparel-site-api/internal/repository"
	"github.com/apparel-site-api/internal/seed"
	"github.com/apparel-site-api/pkg/logger"
)

func main() {
	force := flag.Bool("force", false, "Replace starter articles that already exist")
	flag.Parse()

	log := logger.New(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := seed.Run(ctx, repository.NewArticleRepo(db), *force, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	log.Info().
		Int("inserted", result.Inserted).
		Int("replaced", result.Replaced).
		Int("skipped", result.Skipped).
		Msg("Seeding completed")
}
