package main

import (
	"context"

	"restaurant-ordering/internal/app"
	"restaurant-ordering/internal/config"
	"restaurant-ordering/internal/logging"
	"restaurant-ordering/internal/seed"

	"go.uber.org/zap"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.New(cfg.LogLevel, "seed")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	repos, err := app.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer repos.Close()

	err = seed.Apply(ctx, seed.Targets{
		Categories: repos.Categories,
		Items:      repos.Items,
		Promotions: repos.Promotions,
	}, logger)
	if err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}

	logger.Info("seed applied")
}
