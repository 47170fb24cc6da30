package main

import (
	"bytes"
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/catalog"
	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/pageza/mealplanner/backend/internal/logging"
	"github.com/pageza/mealplanner/backend/internal/service"
)

func main() {
	file := flag.String("file", "", "Recipe catalog JSON (defaults to CATALOG_PATH)")
	uploadS3 := flag.Bool("upload-s3", false, "Also upload the catalog file to the S3 catalog bucket")
	skipDB := flag.Bool("skip-db", false, "Do not write recipes to the database")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	path := *file
	if path == "" {
		path = cfg.Catalog.Path
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("failed to read catalog", zap.String("path", path), zap.Error(err))
	}
	recipes, err := catalog.Decode(bytes.NewReader(raw))
	if err != nil {
		logger.Fatal("failed to decode catalog", zap.Error(err))
	}
	// reject the file before touching any store
	if _, err := catalog.New(recipes); err != nil {
		logger.Fatal("catalog is invalid", zap.Error(err))
	}

	if !*skipDB {
		db, err := database.Open(cfg, logger)
		if err != nil {
			logger.Fatal("failed to open database", zap.Error(err))
		}
		if err := database.RunMigrations(db, "migrations", logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}

		for i := range recipes {
			v := service.EmbedRecipe(recipes[i])
			recipes[i].Embedding = &v
		}
		if err := catalog.Persist(ctx, db, recipes); err != nil {
			logger.Fatal("failed to persist recipes", zap.Error(err))
		}
		logger.Info("seeded recipes", zap.Int("count", len(recipes)))
	}

	if *uploadS3 {
		store, err := config.NewS3Config(ctx, cfg.Catalog)
		if err != nil {
			logger.Fatal("failed to create S3 client", zap.Error(err))
		}
		if err := store.Upload(ctx, cfg.Catalog.S3Key, raw); err != nil {
			logger.Fatal("failed to upload catalog", zap.Error(err))
		}
		logger.Info("uploaded catalog",
			zap.String("bucket", cfg.Catalog.S3Bucket),
			zap.String("key", cfg.Catalog.S3Key))
	}
}
