package services

import (
	"testing"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/auth"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/database"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDatabase(database.DatabaseConfig{
		Driver:     "sqlite",
		Path:       ":memory:?_foreign_keys=on",
		MaxRetries: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func ptr[T any](v T) *T {
	return &v
}

func newUsers(db *gorm.DB, firstAdmin bool) UserService {
	return NewUserService(db, auth.NewBcryptHasher(bcrypt.MinCost), UserServiceOptions{FirstUserAdmin: firstAdmin})
}

func TestUserService(t *testing.T) {
	t.Run("register and authenticate", func(t *testing.T) {
		users := newUsers(newTestDB(t), false)

		user, err := users.Register(RegistrationInput{Name: "Anna", Email: " Anna@Example.com ", Password: "titok123"})
		require.NoError(t, err)
		assert.Equal(t, "anna@example.com", user.Email)
		assert.Equal(t, models.RoleRegistered, user.Role)
		assert.NotEqual(t, "titok123", user.Password)

		got, err := users.Authenticate("ANNA@example.com", "titok123")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		_, err = users.Authenticate("anna@example.com", "rossz")
		assert.ErrorIs(t, err, models.ErrWrongPassword)

		_, err = users.Authenticate("nincs@example.com", "titok123")
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		users := newUsers(newTestDB(t), false)
		_, err := users.Register(RegistrationInput{Name: "A", Email: "a@b.hu", Password: "x"})
		require.NoError(t, err)

		_, err = users.Register(RegistrationInput{Name: "B", Email: "A@B.hu", Password: "y"})
		assert.ErrorIs(t, err, models.ErrUserExists)

		count, err := users.CountUsers()
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unique index maps to user exists", func(t *testing.T) {
		users := newUsers(newTestDB(t), false)
		require.NoError(t, users.CreateUser(&models.User{Name: "A", Email: "a@b.hu", Password: "h"}))
		err := users.CreateUser(&models.User{Name: "B", Email: "a@b.hu", Password: "h"})
		assert.ErrorIs(t, err, models.ErrUserExists)
	})

	t.Run("first user becomes admin when enabled", func(t *testing.T) {
		users := newUsers(newTestDB(t), true)
		first, err := users.Register(RegistrationInput{Name: "A", Email: "a@b.hu", Password: "x"})
		require.NoError(t, err)
		second, err := users.Register(RegistrationInput{Name: "B", Email: "b@b.hu", Password: "x"})
		require.NoError(t, err)

		assert.Equal(t, models.RoleAdmin, first.Role)
		assert.Equal(t, models.RoleRegistered, second.Role)
	})

	t.Run("set role", func(t *testing.T) {
		users := newUsers(newTestDB(t), false)
		user, err := users.Register(RegistrationInput{Name: "A", Email: "a@b.hu", Password: "x"})
		require.NoError(t, err)

		require.NoError(t, users.SetRole(user.ID, models.RoleAdmin))
		got, err := users.GetUserByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, got.Role)

		assert.ErrorIs(t, users.SetRole(999, models.RoleAdmin), models.ErrUserNotFound)
		_, err = users.GetUserByID(999)
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})
}

// seedCatalog creates two categories, three ingredients and two dishes
func seedCatalog(t *testing.T, db *gorm.DB) (soup, cake models.Dish, ingredients []models.Ingredient) {
	t.Helper()
	categories := []models.Category{{Name: "Leves"}, {Name: "Desszert"}}
	require.NoError(t, db.Create(&categories).Error)
	ingredients = []models.Ingredient{{Name: "só"}, {Name: "liszt"}, {Name: "cukor"}}
	require.NoError(t, db.Create(&ingredients).Error)

	soup = models.Dish{Name: "Gulyásleves", CategoryID: &categories[0].ID}
	cake = models.Dish{Name: "Almás pite", CategoryID: &categories[1].ID}
	require.NoError(t, db.Create(&soup).Error)
	require.NoError(t, db.Create(&cake).Error)
	return soup, cake, ingredients
}

func TestCatalogService(t *testing.T) {
	db := newTestDB(t)
	soup, cake, ingredients := seedCatalog(t, db)
	lines := NewDishIngredientService(db)
	require.NoError(t, lines.AddDishIngredient(cake.ID, ingredients[1].ID, ptr(0.5), ptr("kg")))
	require.NoError(t, lines.AddDishIngredient(cake.ID, ingredients[2].ID, ptr(20.0), ptr("dkg")))
	require.NoError(t, db.Create(&models.Dish{Name: "Üres tál"}).Error)

	catalog := NewCatalogService(db)

	t.Run("recipes are ordered by name with joined ingredients", func(t *testing.T) {
		recipes, err := catalog.ListRecipes()
		require.NoError(t, err)
		require.Len(t, recipes, 3)

		assert.Equal(t, "Almás pite", recipes[0].Name)
		assert.Equal(t, "Desszert", *recipes[0].CategoryName)
		assert.Equal(t, "cukor (20 dkg), liszt (0.5 kg)", recipes[0].Ingredients)

		assert.Equal(t, soup.ID, recipes[1].ID)
		assert.Equal(t, "", recipes[1].Ingredients)

		assert.Equal(t, "Üres tál", recipes[2].Name)
		assert.Nil(t, recipes[2].CategoryName)
	})

	t.Run("details keep every line", func(t *testing.T) {
		details, err := catalog.ListRecipeDetails()
		require.NoError(t, err)
		require.Len(t, details, 3)
		require.Len(t, details[0].Ingredients, 2)
		assert.Equal(t, ingredients[2].ID, details[0].Ingredients[0].IngredientID)
		assert.Empty(t, details[1].Ingredients)
	})

	t.Run("usages list the raw links in key order", func(t *testing.T) {
		usages, err := catalog.ListUsages()
		require.NoError(t, err)
		require.Len(t, usages, 2)

		assert.Equal(t, cake.ID, usages[0].DishID)
		assert.Equal(t, "Almás pite", usages[0].DishName)
		assert.Equal(t, ingredients[1].ID, usages[0].IngredientID)
		assert.Equal(t, "liszt", usages[0].IngredientName)
		require.NotNil(t, usages[0].Quantity)
		assert.InDelta(t, 0.5, *usages[0].Quantity, 1e-9)
		assert.Equal(t, "kg", *usages[0].Unit)

		assert.Equal(t, "cukor", usages[1].IngredientName)
	})

	t.Run("usages of an empty catalog", func(t *testing.T) {
		usages, err := NewCatalogService(newTestDB(t)).ListUsages()
		require.NoError(t, err)
		assert.NotNil(t, usages)
		assert.Empty(t, usages)
	})

	t.Run("categories and ingredients ordered by name", func(t *testing.T) {
		categories, err := catalog.ListCategories()
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "Desszert", categories[0].Name)

		list, err := catalog.ListIngredients()
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{"cukor", "liszt", "só"}, []string{list[0].Name, list[1].Name, list[2].Name})
	})
}

func TestGroupRecipeRows(t *testing.T) {
	rows := []recipeRow{
		{DishID: 1, DishName: "A", IngredientID: ptr(uint(5)), IngredientName: ptr("x")},
		{DishID: 1, DishName: "A", IngredientID: ptr(uint(6)), IngredientName: ptr("y")},
		{DishID: 2, DishName: "B"},
	}
	recipes := groupRecipeRows(rows)
	require.Len(t, recipes, 2)
	assert.Len(t, recipes[0].Ingredients, 2)
	assert.NotNil(t, recipes[1].Ingredients)
	assert.Empty(t, recipes[1].Ingredients)

	assert.Empty(t, groupRecipeRows(nil))
}

func TestDishService(t *testing.T) {
	t.Run("create, get and list", func(t *testing.T) {
		db := newTestDB(t)
		_, cake, _ := seedCatalog(t, db)
		dishes := NewDishService(db)

		created, err := dishes.CreateDish("Rakott krumpli", nil)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		got, err := dishes.GetDish(cake.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Category)
		assert.Equal(t, "Desszert", got.Category.Name)

		list, err := dishes.ListDishes()
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Almás pite", list[0].Name)

		count, err := dishes.CountDishes()
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("unknown category and dish", func(t *testing.T) {
		dishes := NewDishService(newTestDB(t))
		_, err := dishes.CreateDish("X", ptr(uint(42)))
		assert.ErrorIs(t, err, models.ErrCategoryNotFound)

		_, err = dishes.GetDish(42)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.ErrorIs(t, dishes.UpdateDish(42, "X", nil), models.ErrNotFound)
		assert.ErrorIs(t, dishes.DeleteDish(42), models.ErrNotFound)
	})

	t.Run("update clears category", func(t *testing.T) {
		db := newTestDB(t)
		soup, _, _ := seedCatalog(t, db)
		dishes := NewDishService(db)

		require.NoError(t, dishes.UpdateDish(soup.ID, "Bableves", nil))
		got, err := dishes.GetDish(soup.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bableves", got.Name)
		assert.Nil(t, got.CategoryID)
	})

	t.Run("delete removes ingredient lines", func(t *testing.T) {
		db := newTestDB(t)
		soup, _, ingredients := seedCatalog(t, db)
		lines := NewDishIngredientService(db)
		require.NoError(t, lines.AddDishIngredient(soup.ID, ingredients[0].ID, nil, nil))

		require.NoError(t, NewDishService(db).DeleteDish(soup.ID))

		var count int64
		require.NoError(t, db.Model(&models.DishIngredient{}).Where("etel_id = ?", soup.ID).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestDishIngredientService(t *testing.T) {
	db := newTestDB(t)
	soup, _, ingredients := seedCatalog(t, db)
	lines := NewDishIngredientService(db)

	require.NoError(t, lines.AddDishIngredient(soup.ID, ingredients[0].ID, ptr(3.5), ptr("g")))

	t.Run("duplicate line", func(t *testing.T) {
		err := lines.AddDishIngredient(soup.ID, ingredients[0].ID, nil, nil)
		assert.ErrorIs(t, err, models.ErrDuplicateIngredient)
	})

	t.Run("unknown dish or ingredient", func(t *testing.T) {
		assert.ErrorIs(t, lines.AddDishIngredient(999, ingredients[0].ID, nil, nil), models.ErrNotFound)
		assert.ErrorIs(t, lines.AddDishIngredient(soup.ID, 999, nil, nil), models.ErrIngredientNotFound)
	})

	t.Run("update and list", func(t *testing.T) {
		require.NoError(t, lines.UpdateDishIngredient(soup.ID, ingredients[0].ID, ptr(4.25), nil))
		items, err := lines.ListDishIngredients(soup.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "só", items[0].Name)
		require.NotNil(t, items[0].Quantity)
		assert.InDelta(t, 4.25, *items[0].Quantity, 0.001)
		assert.Nil(t, items[0].Unit)

		assert.ErrorIs(t, lines.UpdateDishIngredient(soup.ID, ingredients[1].ID, nil, nil), models.ErrNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, lines.RemoveDishIngredient(soup.ID, ingredients[0].ID))
		assert.ErrorIs(t, lines.RemoveDishIngredient(soup.ID, ingredients[0].ID), models.ErrNotFound)
		items, err := lines.ListDishIngredients(soup.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestMessageAndStatsServices(t *testing.T) {
	db := newTestDB(t)
	messages := NewMessageService(db)
	require.NoError(t, messages.CreateMessage(&models.Message{Name: "Első", Body: "szia"}))
	require.NoError(t, messages.CreateMessage(&models.Message{Name: "Második", Email: ptr("m@x.hu"), Body: "hello"}))

	list, err := messages.ListMessages()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Második", list[0].Name)
	assert.False(t, list[0].SubmittedAt.IsZero())

	users := newUsers(db, false)
	_, err = users.Register(RegistrationInput{Name: "A", Email: "a@b.hu", Password: "x"})
	require.NoError(t, err)
	dishes := NewDishService(db)
	_, err = dishes.CreateDish("Leves", nil)
	require.NoError(t, err)

	stats, err := NewStatsService(users, messages, dishes).Summary()
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Users: 1, Messages: 2, Dishes: 1}, stats)
}
