package migration

import (
	"fmt"

	"recipe-hub/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		return fmt.Errorf("error migrating recipe table: %w", err)
	}
	if err := db.AutoMigrate(&entities.SyncRun{}); err != nil {
		return fmt.Errorf("error migrating sync run table: %w", err)
	}

	fmt.Println("Database migration complete")
	return nil
}
