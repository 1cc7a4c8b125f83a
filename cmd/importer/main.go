package main

import (
	"context"
	"flag"
	"os"
	"time"

	"restaurant-ordering/internal/app"
	"restaurant-ordering/internal/config"
	"restaurant-ordering/internal/importer"
	"restaurant-ordering/internal/logging"
	"restaurant-ordering/internal/service/menu"

	"go.uber.org/zap"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to menu CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger, err := logging.New(cfg.LogLevel, "importer")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	primary, err := app.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer primary.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal("open file", zap.Error(err))
	}
	defer f.Close()

	// No fallback store: import errors are fatal.
	stores := menu.Stores{Items: primary.Items, Categories: primary.Categories}
	imp := importer.NewCSVImporter(f, menu.New(stores, stores, menu.Reads{}, logger))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal("import failed", zap.Int("imported", count), zap.Error(err))
	}

	logger.Info("menu imported", zap.Int("items", count), zap.Duration("took", time.Since(start).Truncate(time.Millisecond)))
}
