package main

import (
	"context"
	"os"

	"gamestore/internal/config"
	"gamestore/internal/db"
	"gamestore/internal/logging"
	"gamestore/internal/migrate"
	"github.com/joho/godotenv"
)

func main() {
	logger := logging.New("migrate", os.Getenv("LOG_LEVEL"))

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}

	logger.Info().Msg("migrations applied")
}
