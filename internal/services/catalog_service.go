package services

import (
	"fmt"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"gorm.io/gorm"
)

// CatalogService serves the read-only catalog pages
type CatalogService interface {
	// ListCategories returns every category ordered by name
	ListCategories() ([]models.Category, error)
	// ListIngredients returns every ingredient ordered by name
	ListIngredients() ([]models.Ingredient, error)
	// ListRecipes returns one row per dish with its ingredients joined into a single string
	ListRecipes() ([]models.RecipeSummary, error)
	// ListRecipeDetails returns every dish with its ingredient lines
	ListRecipeDetails() ([]models.RecipeDetail, error)
	// ListUsages returns every dish-ingredient link in key order
	ListUsages() ([]models.Usage, error)
}

type catalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) CatalogService {
	return &catalogService{db: db}
}

func (s *catalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("nev, id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *catalogService) ListIngredients() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.Order("nev, id").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

// recipeRow is one dish x ingredient row of the outer join
type recipeRow struct {
	DishID         uint
	DishName       string
	CategoryName   *string
	IngredientID   *uint
	IngredientName *string
	Quantity       *float64
	Unit           *string
}

func (s *catalogService) recipeRows() ([]recipeRow, error) {
	var rows []recipeRow
	err := s.db.Table("etel AS e").
		Select("e.id AS dish_id, e.nev AS dish_name, k.nev AS category_name, " +
			"h.id AS ingredient_id, h.nev AS ingredient_name, eh.mennyiseg AS quantity, eh.egyseg AS unit").
		Joins("LEFT JOIN kategoria k ON e.kategoria_id = k.id").
		Joins("LEFT JOIN etel_hozzavalo eh ON eh.etel_id = e.id").
		Joins("LEFT JOIN hozzavalo h ON eh.hozzavalo_id = h.id").
		Order("e.nev, e.id, h.nev, h.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return rows, nil
}

// groupRecipeRows folds the ordered join rows into one entry per dish, keeping dishes without ingredients
func groupRecipeRows(rows []recipeRow) []models.RecipeDetail {
	recipes := make([]models.RecipeDetail, 0)
	index := make(map[uint]int)
	for _, row := range rows {
		i, ok := index[row.DishID]
		if !ok {
			recipes = append(recipes, models.RecipeDetail{
				ID:           row.DishID,
				Name:         row.DishName,
				CategoryName: row.CategoryName,
				Ingredients:  []models.RecipeItem{},
			})
			i = len(recipes) - 1
			index[row.DishID] = i
		}
		if row.IngredientID == nil || row.IngredientName == nil {
			continue
		}
		recipes[i].Ingredients = append(recipes[i].Ingredients, models.RecipeItem{
			IngredientID: *row.IngredientID,
			Name:         *row.IngredientName,
			Quantity:     row.Quantity,
			Unit:         row.Unit,
		})
	}
	return recipes
}

func (s *catalogService) ListRecipeDetails() ([]models.RecipeDetail, error) {
	rows, err := s.recipeRows()
	if err != nil {
		return nil, err
	}
	return groupRecipeRows(rows), nil
}

func (s *catalogService) ListRecipes() ([]models.RecipeSummary, error) {
	details, err := s.ListRecipeDetails()
	if err != nil {
		return nil, err
	}
	summaries := make([]models.RecipeSummary, 0, len(details))
	for _, d := range details {
		summaries = append(summaries, models.RecipeSummary{
			ID:           d.ID,
			Name:         d.Name,
			CategoryName: d.CategoryName,
			Ingredients:  d.Summary(),
		})
	}
	return summaries, nil
}

func (s *catalogService) ListUsages() ([]models.Usage, error) {
	usages := make([]models.Usage, 0)
	err := s.db.Table("etel_hozzavalo AS eh").
		Select("eh.etel_id AS dish_id, e.nev AS dish_name, eh.hozzavalo_id AS ingredient_id, " +
			"h.nev AS ingredient_name, eh.mennyiseg AS quantity, eh.egyseg AS unit").
		Joins("JOIN etel e ON e.id = eh.etel_id").
		Joins("JOIN hozzavalo h ON h.id = eh.hozzavalo_id").
		Order("eh.etel_id, eh.hozzavalo_id").
		Scan(&usages).Error
	if err != nil {
		return nil, fmt.Errorf("list usages: %w", err)
	}
	return usages, nil
}
