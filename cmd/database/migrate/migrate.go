package migration

import (
	"fmt"
	"log"
	"resq-food-backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// Setup PostgreSQL extensions for uuid primary keys
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Item{}); err != nil {
		log.Fatalf("Error migrating item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Transaction{}); err != nil {
		log.Fatalf("Error migrating transaction database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Withdrawal{}); err != nil {
		log.Fatalf("Error migrating withdrawal database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
