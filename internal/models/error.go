package models

import "errors"

// Errors returned by the service layer. Handlers match them with errors.Is.
var (
	ErrNotFound            = errors.New("record_not_found")
	ErrUserExists          = errors.New("user_already_exists")
	ErrUserNotFound        = errors.New("user_not_found")
	ErrWrongPassword       = errors.New("wrong_password")
	ErrCategoryNotFound    = errors.New("category_not_found")
	ErrIngredientNotFound  = errors.New("ingredient_not_found")
	ErrDuplicateIngredient = errors.New("ingredient_already_on_dish")
)

// All lists every persistent model, in dependency order, for migrations
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Ingredient{},
		&Dish{},
		&DishIngredient{},
		&Message{},
	}
}
