package models

import (
	"time"
)

// Category groups dishes, e.g. soups or desserts
type Category struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"column:nev;size:100;not null"`
	Description *string `gorm:"column:leiras;type:text"`
}

func (Category) TableName() string {
	return "kategoria"
}

// Ingredient is a catalog entry with an optional default unit of measure
type Ingredient struct {
	ID   uint    `gorm:"primaryKey"`
	Name string  `gorm:"column:nev;size:100;not null"`
	Unit *string `gorm:"column:egyseg;size:50"`
}

func (Ingredient) TableName() string {
	return "hozzavalo"
}

// Dish is a recipe, optionally categorized and dated
type Dish struct {
	ID          uint       `gorm:"primaryKey"`
	Name        string     `gorm:"column:nev;size:200;not null"`
	CategoryID  *uint      `gorm:"column:kategoria_id;index"`
	Category    *Category  `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	ListedOn    *time.Time `gorm:"column:felirdatum;type:date"`
	FirstMadeOn *time.Time `gorm:"column:elsodatum;type:date"`
}

func (Dish) TableName() string {
	return "etel"
}

// DishIngredient links a dish to an ingredient; (DishID, IngredientID) is unique
type DishIngredient struct {
	DishID       uint        `gorm:"column:etel_id;primaryKey;autoIncrement:false"`
	IngredientID uint        `gorm:"column:hozzavalo_id;primaryKey;autoIncrement:false"`
	Quantity     *float64    `gorm:"column:mennyiseg;type:decimal(10,2)"`
	Unit         *string     `gorm:"column:egyseg;size:50"`
	Dish         *Dish       `gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

func (DishIngredient) TableName() string {
	return "etel_hozzavalo"
}
