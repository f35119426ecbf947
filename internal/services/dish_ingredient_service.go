package services

import (
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"gorm.io/gorm"
)

// DishIngredientService manages the ingredient lines of one dish
type DishIngredientService interface {
	// ListDishIngredients returns the lines of a dish ordered by ingredient name
	ListDishIngredients(dishID uint) ([]models.RecipeItem, error)
	// AddDishIngredient links an ingredient; ErrDuplicateIngredient if already linked
	AddDishIngredient(dishID, ingredientID uint, quantity *float64, unit *string) error
	// UpdateDishIngredient replaces quantity and unit of an existing line
	UpdateDishIngredient(dishID, ingredientID uint, quantity *float64, unit *string) error
	// RemoveDishIngredient deletes a line; ErrNotFound if it does not exist
	RemoveDishIngredient(dishID, ingredientID uint) error
}

type dishIngredientService struct {
	db *gorm.DB
}

func NewDishIngredientService(db *gorm.DB) DishIngredientService {
	return &dishIngredientService{db: db}
}

func (s *dishIngredientService) ListDishIngredients(dishID uint) ([]models.RecipeItem, error) {
	var items []models.RecipeItem
	err := s.db.Table("etel_hozzavalo AS eh").
		Select("eh.hozzavalo_id AS ingredient_id, h.nev AS name, eh.mennyiseg AS quantity, eh.egyseg AS unit").
		Joins("JOIN hozzavalo h ON h.id = eh.hozzavalo_id").
		Where("eh.etel_id = ?", dishID).
		Order("h.nev, h.id").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list ingredients of dish %d: %w", dishID, err)
	}
	return items, nil
}

func (s *dishIngredientService) exists(model interface{}, id uint) (bool, error) {
	var count int64
	if err := s.db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *dishIngredientService) lineExists(dishID, ingredientID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.DishIngredient{}).
		Where("etel_id = ? AND hozzavalo_id = ?", dishID, ingredientID).
		Count(&count).Error
	return count > 0, err
}

func (s *dishIngredientService) AddDishIngredient(dishID, ingredientID uint, quantity *float64, unit *string) error {
	ok, err := s.exists(&models.Dish{}, dishID)
	if err != nil {
		return fmt.Errorf("check dish %d: %w", dishID, err)
	}
	if !ok {
		return models.ErrNotFound
	}
	if ok, err = s.exists(&models.Ingredient{}, ingredientID); err != nil {
		return fmt.Errorf("check ingredient %d: %w", ingredientID, err)
	} else if !ok {
		return models.ErrIngredientNotFound
	}
	if ok, err = s.lineExists(dishID, ingredientID); err != nil {
		return fmt.Errorf("check ingredient line: %w", err)
	} else if ok {
		return models.ErrDuplicateIngredient
	}

	line := &models.DishIngredient{DishID: dishID, IngredientID: ingredientID, Quantity: quantity, Unit: unit}
	if err := s.db.Create(line).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateIngredient
		}
		return fmt.Errorf("add ingredient line: %w", err)
	}
	return nil
}

func (s *dishIngredientService) UpdateDishIngredient(dishID, ingredientID uint, quantity *float64, unit *string) error {
	ok, err := s.lineExists(dishID, ingredientID)
	if err != nil {
		return fmt.Errorf("check ingredient line: %w", err)
	}
	if !ok {
		return models.ErrNotFound
	}

	values := map[string]interface{}{"mennyiseg": nil, "egyseg": nil}
	if quantity != nil {
		values["mennyiseg"] = *quantity
	}
	if unit != nil {
		values["egyseg"] = *unit
	}
	err = s.db.Model(&models.DishIngredient{}).
		Where("etel_id = ? AND hozzavalo_id = ?", dishID, ingredientID).
		Updates(values).Error
	if err != nil {
		return fmt.Errorf("update ingredient line: %w", err)
	}
	return nil
}

func (s *dishIngredientService) RemoveDishIngredient(dishID, ingredientID uint) error {
	result := s.db.Where("etel_id = ? AND hozzavalo_id = ?", dishID, ingredientID).Delete(&models.DishIngredient{})
	if result.Error != nil {
		return fmt.Errorf("remove ingredient line: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
