package main

import (
	"os"

	"recipe-hub/cmd/config"
	migration "recipe-hub/cmd/database/migrate"
	"recipe-hub/internal/utils"

	"go.uber.org/zap"
)

func main() {
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

	app, err := config.NewApp(db)
	if err != nil {
		utils.Logger.Fatal("failed to build app", zap.Error(err))
	}

	port := utils.GetConfig("APP_PORT")
	utils.Logger.Info("starting server", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		utils.Logger.Fatal("server stopped", zap.Error(err))
	}
}
