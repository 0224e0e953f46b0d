// Command sync imports a batch of recipes from the external source. Without
// flags it picks a strategy based on how full the store already is; an
// explicit -strategy and -count override that.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"recipe-hub/cmd/config"
	migration "recipe-hub/cmd/database/migrate"
	"recipe-hub/domain"
	"recipe-hub/internal/utils"
	"recipe-hub/pkg/cache"
	"recipe-hub/pkg/mealdb"
	"recipe-hub/pkg/recipe"
	"recipe-hub/pkg/syncer"

	"go.uber.org/zap"
)

func main() {
	strategy := flag.String("strategy", "", "sync strategy: quick, random, category or area (default: smart selection)")
	count := flag.Int("count", 20, "target number of recipes")
	flag.Parse()

	utils.LoadConfig()

	if err := utils.InitLogger(utils.GetConfig("LOG_LEVEL")); err != nil {
		os.Exit(1)
	}
	defer utils.SyncLogger()

	db, err := config.ConnectDB()
	if err != nil {
		utils.Logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := migration.Migrate(db); err != nil {
		utils.Logger.Fatal("failed to migrate database", zap.Error(err))
	}

	cacheTTL, parseErr := time.ParseDuration(utils.GetConfig("CACHE_TTL"))
	if parseErr != nil {
		cacheTTL = 6 * time.Hour
	}
	cacheService := cache.NewService(utils.GetConfig("REDIS_ADDR"), cacheTTL)
	defer cacheService.Close()

	partitionDelay, parseErr := time.ParseDuration(utils.GetConfig("SYNC_PARTITION_DELAY"))
	if parseErr != nil {
		partitionDelay = time.Second
	}

	mealClient := mealdb.NewClient(utils.GetConfig("MEALDB_BASE_URL"), cacheService)
	recipeRepository := recipe.NewRecipeRepository(db)
	syncRunRepository := syncer.NewSyncRunRepository(db)
	syncService := syncer.NewSyncService(mealClient, recipeRepository, syncRunRepository, partitionDelay)

	ctx := context.Background()

	var report domain.SyncReport
	switch *strategy {
	case "":
		report, err = syncService.SmartSync(ctx)
	case domain.StrategyQuick, domain.StrategyRandom:
		report, err = syncService.SyncRandom(ctx, *count)
	case domain.StrategyCategory:
		report, err = syncService.SyncByCategory(ctx, *count)
	case domain.StrategyArea:
		report, err = syncService.SyncByArea(ctx, *count)
	default:
		utils.Logger.Fatal("unknown sync strategy", zap.String("strategy", *strategy))
	}
	if err != nil {
		utils.Logger.Fatal("sync failed", zap.Error(err))
	}

	utils.Logger.Info("sync completed",
		zap.String("run_id", report.RunID.String()),
		zap.String("strategy", report.Strategy),
		zap.Int("target", report.Target),
		zap.Int("added", report.Added),
		zap.Int("skipped", report.Skipped),
		zap.Duration("duration", report.Duration),
	)
}
