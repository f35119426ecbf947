package services

import (
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"gorm.io/gorm"
)

// DishService provides create, read, update and delete for dishes
type DishService interface {
	// ListDishes retrieves all dishes with their category, ordered by name
	ListDishes() ([]models.Dish, error)
	// GetDish retrieves a dish by its ID; ErrNotFound if missing
	GetDish(id uint) (*models.Dish, error)
	// CreateDish stores a dish; ErrCategoryNotFound for an unknown category
	CreateDish(name string, categoryID *uint) (*models.Dish, error)
	// UpdateDish changes name and category of an existing dish
	UpdateDish(id uint, name string, categoryID *uint) error
	// DeleteDish removes a dish together with its ingredient lines
	DeleteDish(id uint) error
	CountDishes() (int64, error)
}

type dishService struct {
	db *gorm.DB
}

func NewDishService(db *gorm.DB) DishService {
	return &dishService{db: db}
}

func (s *dishService) ListDishes() ([]models.Dish, error) {
	var dishes []models.Dish
	if err := s.db.Preload("Category").Order("nev, id").Find(&dishes).Error; err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	return dishes, nil
}

func (s *dishService) GetDish(id uint) (*models.Dish, error) {
	var dish models.Dish
	if err := s.db.Preload("Category").First(&dish, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get dish %d: %w", id, err)
	}
	return &dish, nil
}

func (s *dishService) checkCategory(categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	var category models.Category
	if err := s.db.Select("id").First(&category, *categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrCategoryNotFound
		}
		return fmt.Errorf("check category %d: %w", *categoryID, err)
	}
	return nil
}

func (s *dishService) CreateDish(name string, categoryID *uint) (*models.Dish, error) {
	if err := s.checkCategory(categoryID); err != nil {
		return nil, err
	}
	dish := &models.Dish{Name: name, CategoryID: categoryID}
	if err := s.db.Create(dish).Error; err != nil {
		return nil, fmt.Errorf("create dish: %w", err)
	}
	return dish, nil
}

func (s *dishService) UpdateDish(id uint, name string, categoryID *uint) error {
	if _, err := s.GetDish(id); err != nil {
		return err
	}
	if err := s.checkCategory(categoryID); err != nil {
		return err
	}
	var category interface{}
	if categoryID != nil {
		category = *categoryID
	}
	err := s.db.Model(&models.Dish{}).Where("id = ?", id).
		Updates(map[string]interface{}{"nev": name, "kategoria_id": category}).Error
	if err != nil {
		return fmt.Errorf("update dish %d: %w", id, err)
	}
	return nil
}

func (s *dishService) DeleteDish(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("etel_id = ?", id).Delete(&models.DishIngredient{}).Error; err != nil {
			return fmt.Errorf("delete ingredient lines of dish %d: %w", id, err)
		}
		result := tx.Delete(&models.Dish{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete dish %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

func (s *dishService) CountDishes() (int64, error) {
	var count int64
	err := s.db.Model(&models.Dish{}).Count(&count).Error
	return count, err
}
