package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/apparel-site-api/internal/config"
	"github.com/apparel-site-api/internal/database"
	"github.com/apparel-site-api/pkg/logger"
)

func main() {
	var (
		cmd     = flag.String("cmd", "up", "Migration command: up, down, version")
		version = flag.Uint("version", 0, "Target version for up (0 = latest)")
	)
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

	switch *cmd {
	case "up":
		if *version > 0 {
			err = db.MigrateToVersion(*version)
		} else {
			err = db.RunMigrations()
		}
	case "down":
		err = db.MigrateDown()
	case "version":
		v, dirty, verr := db.MigrationVersion()
		if verr == nil {
			fmt.Printf("version: %d, dirty: %v\n", v, dirty)
		}
		err = verr
	default:
		fmt.Println("usage: migrate -cmd up|down|version [-version N]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal().Err(err).Str("cmd", *cmd).Msg("Migration failed")
	}
}
