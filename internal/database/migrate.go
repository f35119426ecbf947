package database

import (
	"fmt"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every model
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	log.Info("Database schema migrated")
	return nil
}

// Seed inserts a few categories and ingredients when the catalog is empty
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Database already seeded with initial data")
		return nil
	}

	log.Info("Database is empty, seeding initial data")
	categories := []models.Category{
		{Name: "Leves"},
		{Name: "Főétel"},
		{Name: "Desszert"},
	}
	pc, g, dl := "db", "g", "dl"
	ingredients := []models.Ingredient{
		{Name: "Burgonya", Unit: &g},
		{Name: "Liszt", Unit: &g},
		{Name: "Tej", Unit: &dl},
		{Name: "Tojás", Unit: &pc},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}
		if err := tx.Create(&ingredients).Error; err != nil {
			return err
		}
		log.Info("Database seeded successfully")
		return nil
	})
}
