package models

import (
	"fmt"
	"strconv"
	"strings"
)

// RecipeItem is one ingredient line of a dish
type RecipeItem struct {
	IngredientID uint
	Name         string
	Quantity     *float64
	Unit         *string
}

// Label renders "name (quantity unit)"; missing parts stay blank
func (i RecipeItem) Label() string {
	unit := ""
	if i.Unit != nil {
		unit = *i.Unit
	}
	return fmt.Sprintf("%s (%s %s)", i.Name, FormatQuantity(i.Quantity), unit)
}

// RecipeDetail is a dish with its category and ingredient lines in name order
type RecipeDetail struct {
	ID           uint
	Name         string
	CategoryName *string
	Ingredients  []RecipeItem
}

// Summary joins the distinct ingredient labels with ", "
func (d RecipeDetail) Summary() string {
	seen := make(map[string]bool, len(d.Ingredients))
	parts := make([]string, 0, len(d.Ingredients))
	for _, item := range d.Ingredients {
		label := item.Label()
		if seen[label] {
			continue
		}
		seen[label] = true
		parts = append(parts, label)
	}
	return strings.Join(parts, ", ")
}

// RecipeSummary is one row of the catalog listing
type RecipeSummary struct {
	ID           uint
	Name         string
	CategoryName *string
	Ingredients  string
}

// Usage is one stored dish-ingredient link with both names resolved
type Usage struct {
	DishID         uint
	DishName       string
	IngredientID   uint
	IngredientName string
	Quantity       *float64
	Unit           *string
}

// Stats is the admin dashboard aggregate
type Stats struct {
	Users    int64
	Messages int64
	Dishes   int64
}

// FormatQuantity renders a stored quantity without trailing zeros; nil renders blank
func FormatQuantity(q *float64) string {
	if q == nil {
		return ""
	}
	return strconv.FormatFloat(*q, 'f', -1, 64)
}
