package config

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/push"
)

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.CarouselImage{},
		&models.InterestedUser{},
		&models.ActivityLog{},
		&push.Subscription{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
