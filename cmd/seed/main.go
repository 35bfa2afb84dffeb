package main

import (
	"context"
	"os"

	"gamestore/internal/config"
	"gamestore/internal/db"
	"gamestore/internal/logging"
	"gamestore/internal/seed"
	"github.com/joho/godotenv"
)

func main() {
	logger := logging.New("seed", os.Getenv("LOG_LEVEL"))

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

	if err := seed.Apply(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("apply seed")
	}

	logger.Info().Msg("seed applied")
}
