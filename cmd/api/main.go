package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/api"
	"github.com/pageza/mealplanner/backend/internal/catalog"
	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/pageza/mealplanner/backend/internal/logging"
	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/recommend"
	"github.com/pageza/mealplanner/backend/internal/server"
	"github.com/pageza/mealplanner/backend/internal/service"
)

func main() {
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

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg, logger)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, "migrations", logger); err != nil {
		return err
	}

	redisClient, err := database.NewRedisClient(cfg, logger)
	switch {
	case errors.Is(err, database.ErrRedisNotConfigured):
		logger.Info("redis not configured, running without cache and rate limiting")
	case err != nil:
		return err
	default:
		defer redisClient.Close()
	}

	cat, err := catalog.Open(ctx, cfg.Catalog, db)
	if err != nil {
		return err
	}
	logger.Info("recipe catalog loaded",
		zap.String("source", cfg.Catalog.Source),
		zap.Int("recipes", cat.Len()))

	engine, err := recommend.NewEngine(cfg.Recommend.TargetSize, cfg.Recommend.PerCategoryTarget)
	if err != nil {
		return err
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTExpiry)
	preferenceService := service.NewPreferenceService(db)

	opts := []service.RecommendationOption{service.WithLogger(logger)}
	if llm := service.NewLLMService(cfg.LLM, logger); llm != nil {
		opts = append(opts, service.WithLLM(llm))
	}
	if redisClient != nil {
		opts = append(opts, service.WithCache(service.NewRedisRecommendationCache(redisClient, cfg.Recommend.CacheTTL)))
	}

	deps := api.Deps{
		Auth:            authService,
		Recipes:         service.NewRecipeService(cat, db),
		Recommendations: service.NewRecommendationService(cat, engine, preferenceService, opts...),
		Preferences:     preferenceService,
		ShoppingLists:   service.NewShoppingListService(cat, db),
		Checks:          healthChecks(db, redisClient),
		Log:             logger,
	}
	if redisClient != nil && cfg.RateLimit.Enabled {
		deps.Limiter = middleware.NewRecommendationRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
	}

	return server.New(cfg, deps).Start(ctx)
}

func healthChecks(db *gorm.DB, redisClient *redis.Client) map[string]api.CheckFunc {
	checks := map[string]api.CheckFunc{
		"database": func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	return checks
}
