package importer

import (
	"bufio"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/validation"
)

// Input file names, each with a header line
const (
	CategoriesFile      = "kategoria.txt"
	IngredientsFile     = "hozzavalo.txt"
	DishesFile          = "etel.txt"
	DishIngredientsFile = "hasznalt.txt"
)

// readLines returns the trimmed, non-blank data lines of name without its header
func readLines(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return lines[1:], nil
}

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseDate reads "1993.6.27" style dates; anything else is nil
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006.1.2", s)
	if err != nil {
		return nil
	}
	return &t
}

func field(parts []string, i int) string {
	if i < len(parts) {
		return strings.TrimSpace(parts[i])
	}
	return ""
}

// parseCategory reads "id;nev"
func parseCategory(line string) (models.Category, bool) {
	parts := strings.Split(line, ";")
	id, ok := parseID(field(parts, 0))
	name := field(parts, 1)
	if !ok || name == "" {
		return models.Category{}, false
	}
	return models.Category{ID: id, Name: name}, true
}

// parseIngredient reads "id;nev"
func parseIngredient(line string) (models.Ingredient, bool) {
	parts := strings.Split(line, ";")
	id, ok := parseID(field(parts, 0))
	name := field(parts, 1)
	if !ok || name == "" {
		return models.Ingredient{}, false
	}
	return models.Ingredient{ID: id, Name: name}, true
}

// parseDish reads "nev;id;kategoriaid;felirdatum;elsodatum"
func parseDish(line string) (models.Dish, bool) {
	parts := strings.Split(line, ";")
	if len(parts) < 3 {
		return models.Dish{}, false
	}
	id, ok := parseID(field(parts, 1))
	name := field(parts, 0)
	if !ok || name == "" {
		return models.Dish{}, false
	}
	dish := models.Dish{ID: id, Name: name, ListedOn: parseDate(field(parts, 3)), FirstMadeOn: parseDate(field(parts, 4))}
	if categoryID, ok := parseID(field(parts, 2)); ok {
		dish.CategoryID = &categoryID
	}
	return dish, true
}

// parseDishIngredient reads "mennyiseg;egyseg;etelid;hozzavaloid"
func parseDishIngredient(line string) (models.DishIngredient, bool) {
	parts := strings.Split(line, ";")
	if len(parts) < 4 {
		return models.DishIngredient{}, false
	}
	dishID, ok := parseID(field(parts, 2))
	if !ok {
		return models.DishIngredient{}, false
	}
	ingredientID, ok := parseID(field(parts, 3))
	if !ok {
		return models.DishIngredient{}, false
	}
	return models.DishIngredient{
		DishID:       dishID,
		IngredientID: ingredientID,
		Quantity:     validation.ParseQuantity(field(parts, 0)),
		Unit:         validation.OptionalString(field(parts, 1)),
	}, true
}
