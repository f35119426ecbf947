package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/services"
	"github.com/gin-gonic/gin"
)

// CatalogController serves the public, read-only pages
type CatalogController interface {
	Home(c *gin.Context)
	Recipes(c *gin.Context)
	RecipeDetails(c *gin.Context)
	Categories(c *gin.Context)
	Ingredients(c *gin.Context)
	Usages(c *gin.Context)
}

type catalogController struct {
	catalog services.CatalogService
}

func NewCatalogController(catalog services.CatalogService) CatalogController {
	return &catalogController{catalog: catalog}
}

func (cc *catalogController) Home(c *gin.Context) {
	render(c, http.StatusOK, "index.html", gin.H{"Title": "Főoldal"})
}

// Recipes lists every dish with its ingredients joined into one line
func (cc *catalogController) Recipes(c *gin.Context) {
	recipes, err := cc.catalog.ListRecipes()
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "receptek.html", gin.H{"Title": "Receptek", "Recipes": recipes})
}

// RecipeDetails lists every dish with one entry per ingredient
func (cc *catalogController) RecipeDetails(c *gin.Context) {
	recipes, err := cc.catalog.ListRecipeDetails()
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "etelek_hozzavalok.html", gin.H{"Title": "Ételek és hozzávalók", "Recipes": recipes})
}

func (cc *catalogController) Categories(c *gin.Context) {
	categories, err := cc.catalog.ListCategories()
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "kategoria.html", gin.H{"Title": "Kategóriák", "Categories": categories})
}

func (cc *catalogController) Ingredients(c *gin.Context) {
	ingredients, err := cc.catalog.ListIngredients()
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "hozzavalo.html", gin.H{"Title": "Hozzávalók", "Ingredients": ingredients})
}

// Usages lists the stored dish-ingredient links one row each
func (cc *catalogController) Usages(c *gin.Context) {
	usages, err := cc.catalog.ListUsages()
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "hasznalt.html", gin.H{"Title": "Használt hozzávalók", "Usages": usages})
}
