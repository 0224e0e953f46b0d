package config

import (
	"os"
	"time"

	"recipe-hub/internal/api/handlers"
	"recipe-hub/internal/api/routes"
	"recipe-hub/internal/middleware"
	"recipe-hub/internal/utils"
	"recipe-hub/pkg/cache"
	"recipe-hub/pkg/mealdb"
	"recipe-hub/pkg/recipe"
	"recipe-hub/pkg/recommendation"
	"recipe-hub/pkg/syncer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/access.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// external source
	cacheTTL := parseDurationConfig("CACHE_TTL", 6*time.Hour)
	cacheService := cache.NewService(utils.GetConfig("REDIS_ADDR"), cacheTTL)
	mealClient := mealdb.NewClient(utils.GetConfig("MEALDB_BASE_URL"), cacheService)

	// Repository
	recipeRepository := recipe.NewRecipeRepository(db)
	syncRunRepository := syncer.NewSyncRunRepository(db)

	// Service
	recipeService := recipe.NewRecipeService(recipeRepository)
	recommendationService := recommendation.NewRecommendationService(recipeRepository)
	partitionDelay := parseDurationConfig("SYNC_PARTITION_DELAY", time.Second)
	syncService := syncer.NewSyncService(mealClient, recipeRepository, syncRunRepository, partitionDelay)

	// Handler
	recipeHandler := handlers.NewRecipeHandler(recipeService, recommendationService, validator)
	syncHandler := handlers.NewSyncHandler(syncService, validator)

	// routes
	routesConfig := routes.Config{
		App:           app,
		RecipeHandler: recipeHandler,
		SyncHandler:   syncHandler,
		Middleware:    middlewares,
	}
	routesConfig.Setup()
	return app, nil
}

func parseDurationConfig(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(utils.GetConfig(key))
	if err != nil {
		return fallback
	}
	return d
}
