package migration

import (
	"fmt"
	"log"

	"github.com/wastewise/wastewise-backend/entities"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []interface{}{
		&entities.User{},
		&entities.FoodItem{},
		&entities.ConsumptionPattern{},
		&entities.UserStats{},
		&entities.PointTransaction{},
		&entities.Challenge{},
		&entities.UserChallenge{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Fatalf("Error migrating database: %v", err)
			return err
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
