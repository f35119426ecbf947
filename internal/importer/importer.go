// Package importer replaces the catalog tables with the contents of the delimited text exports.
package importer

import (
	"fmt"
	"io/fs"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// SetLogLevel aligns the package logger with the command's level
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

// Report counts the rows stored per file
type Report struct {
	Categories      int
	Ingredients     int
	Dishes          int
	DishIngredients int
	// Failed counts rows that parsed but could not be inserted
	Failed int
	// Skipped counts rows with missing required fields
	Skipped int
}

func (r Report) String() string {
	return fmt.Sprintf("kategoria: %d, hozzavalo: %d, etel: %d, etel_hozzavalo: %d (failed: %d, skipped: %d)",
		r.Categories, r.Ingredients, r.Dishes, r.DishIngredients, r.Failed, r.Skipped)
}

// dialect holds the statements that relax and restore foreign key checks
type dialect struct {
	// run on the pinned connection around the transaction
	sessionBefore, sessionAfter []string
	// run inside the transaction before the load
	txBefore []string
	// resetSequences moves serial sequences past the imported ids
	resetSequences bool
}

func dialectFor(db *gorm.DB) dialect {
	switch db.Dialector.Name() {
	case "mysql":
		return dialect{
			sessionBefore: []string{"SET FOREIGN_KEY_CHECKS = 0"},
			sessionAfter:  []string{"SET FOREIGN_KEY_CHECKS = 1"},
		}
	case "postgres":
		return dialect{txBefore: []string{"SET CONSTRAINTS ALL DEFERRED"}, resetSequences: true}
	default:
		// PRAGMA foreign_keys is a no-op inside a transaction
		return dialect{
			sessionBefore: []string{"PRAGMA foreign_keys = OFF"},
			sessionAfter:  []string{"PRAGMA foreign_keys = ON"},
		}
	}
}

// Run empties the catalog tables and loads the four files from fsys in a single transaction.
// A bad row is logged and skipped; any other failure rolls the whole import back.
func Run(db *gorm.DB, fsys fs.FS) (Report, error) {
	files, err := load(fsys)
	if err != nil {
		return Report{}, err
	}

	d := dialectFor(db)
	var report Report
	err = db.Connection(func(conn *gorm.DB) error {
		for _, stmt := range d.sessionBefore {
			if err := conn.Exec(stmt).Error; err != nil {
				return fmt.Errorf("relax foreign keys: %w", err)
			}
		}
		txErr := conn.Transaction(func(tx *gorm.DB) error {
			for _, stmt := range d.txBefore {
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("relax foreign keys: %w", err)
				}
			}
			if err := truncate(tx); err != nil {
				return err
			}
			report = files.insert(tx)
			if d.resetSequences {
				return resetSequences(tx)
			}
			return nil
		})
		for _, stmt := range d.sessionAfter {
			if err := conn.Exec(stmt).Error; err != nil && txErr == nil {
				txErr = fmt.Errorf("restore foreign keys: %w", err)
			}
		}
		return txErr
	})
	if err != nil {
		return Report{}, err
	}
	return report, nil
}

// parsed holds the rows of every file, already validated for required fields
type parsed struct {
	categories      []models.Category
	ingredients     []models.Ingredient
	dishes          []models.Dish
	dishIngredients []models.DishIngredient
	skipped         int
}

func load(fsys fs.FS) (*parsed, error) {
	p := &parsed{}
	if err := each(fsys, CategoriesFile, func(line string) bool {
		row, ok := parseCategory(line)
		if ok {
			p.categories = append(p.categories, row)
		}
		return ok
	}, &p.skipped); err != nil {
		return nil, err
	}
	if err := each(fsys, IngredientsFile, func(line string) bool {
		row, ok := parseIngredient(line)
		if ok {
			p.ingredients = append(p.ingredients, row)
		}
		return ok
	}, &p.skipped); err != nil {
		return nil, err
	}
	if err := each(fsys, DishesFile, func(line string) bool {
		row, ok := parseDish(line)
		if ok {
			p.dishes = append(p.dishes, row)
		}
		return ok
	}, &p.skipped); err != nil {
		return nil, err
	}
	if err := each(fsys, DishIngredientsFile, func(line string) bool {
		row, ok := parseDishIngredient(line)
		if ok {
			p.dishIngredients = append(p.dishIngredients, row)
		}
		return ok
	}, &p.skipped); err != nil {
		return nil, err
	}
	return p, nil
}

func each(fsys fs.FS, name string, parse func(string) bool, skipped *int) error {
	lines, err := readLines(fsys, name)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if !parse(line) {
			log.WithFields(logrus.Fields{"file": name, "line": line}).Warn("Skipping incomplete row")
			*skipped++
		}
	}
	return nil
}

// truncate deletes children first so it works with or without relaxed foreign keys
func truncate(tx *gorm.DB) error {
	all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []interface{}{&models.DishIngredient{}, &models.Dish{}, &models.Ingredient{}, &models.Category{}} {
		if err := all.Delete(model).Error; err != nil {
			return fmt.Errorf("empty table: %w", err)
		}
	}
	return nil
}

// insertRow stores one row behind a savepoint so a failure leaves the transaction usable
func insertRow(tx *gorm.DB, file string, row interface{}) bool {
	err := tx.Transaction(func(sp *gorm.DB) error {
		return sp.Create(row).Error
	})
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{"file": file, "row": fmt.Sprintf("%+v", row)}).Error("Row import failed")
		return false
	}
	return true
}

func (p *parsed) insert(tx *gorm.DB) Report {
	report := Report{Skipped: p.skipped}
	count := func(file string, row interface{}, n *int) {
		if insertRow(tx, file, row) {
			*n++
		} else {
			report.Failed++
		}
	}
	for i := range p.categories {
		count(CategoriesFile, &p.categories[i], &report.Categories)
	}
	for i := range p.ingredients {
		count(IngredientsFile, &p.ingredients[i], &report.Ingredients)
	}
	for i := range p.dishes {
		count(DishesFile, &p.dishes[i], &report.Dishes)
	}
	for i := range p.dishIngredients {
		count(DishIngredientsFile, &p.dishIngredients[i], &report.DishIngredients)
	}
	log.WithFields(logrus.Fields{
		"kategoria":      report.Categories,
		"hozzavalo":      report.Ingredients,
		"etel":           report.Dishes,
		"etel_hozzavalo": report.DishIngredients,
		"failed":         report.Failed,
		"skipped":        report.Skipped,
	}).Info("Import finished")
	return report
}

func resetSequences(tx *gorm.DB) error {
	for _, table := range []string{"kategoria", "hozzavalo", "etel"} {
		stmt := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE(MAX(id), 1)) FROM %[1]s", table)
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("reset sequence of %s: %w", table, err)
		}
	}
	return nil
}
