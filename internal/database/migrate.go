package database

import (
	"ripple/internal/models"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Repost{},
		&models.Save{},
	)
}
