package main

import (
	"context"

	"restaurant-ordering/internal/app"
	"restaurant-ordering/internal/config"
	"restaurant-ordering/internal/logging"

	"go.uber.org/zap"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.New(cfg.LogLevel, "migrate")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := app.Migrate(context.Background(), cfg); err != nil {
		logger.Fatal("apply migrations", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}

	logger.Info("migrations applied", zap.String("backend", cfg.StoreBackend))
}
