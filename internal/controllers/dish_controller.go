package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/auth"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/services"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/validation"
	"github.com/gin-gonic/gin"
)

const (
	msgDishCreated       = "Az étel létrehozva."
	msgDishUpdated       = "Az étel módosítva."
	msgDishDeleted       = "Az étel törölve."
	msgUnknownCategory   = "A kiválasztott kategória nem létezik."
	msgPickIngredient    = "Válassz hozzávalót!"
	msgUnknownIngredient = "A kiválasztott hozzávaló nem létezik."
	msgDuplicateLine     = "Ez a hozzávaló már szerepel az ételben."
	msgIngredientAdded   = "Hozzávaló hozzáadva."
	msgIngredientUpdated = "Hozzávaló módosítva."
	msgIngredientRemoved = "Hozzávaló törölve."
)

// DishController manages dishes and their ingredient lines under /crud
type DishController interface {
	List(c *gin.Context)
	New(c *gin.Context)
	Create(c *gin.Context)
	Edit(c *gin.Context)
	Update(c *gin.Context)
	ConfirmDelete(c *gin.Context)
	Delete(c *gin.Context)
	Ingredients(c *gin.Context)
	AddIngredient(c *gin.Context)
	UpdateIngredient(c *gin.Context)
	RemoveIngredient(c *gin.Context)
}

type dishController struct {
	dishes  services.DishService
	lines   services.DishIngredientService
	catalog services.CatalogService
}

func NewDishController(dishes services.DishService, lines services.DishIngredientService, catalog services.CatalogService) DishController {
	return &dishController{dishes: dishes, lines: lines, catalog: catalog}
}

func (dc *dishController) List(c *gin.Context) {
	dishes, err := dc.dishes.ListDishes()
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "crud.html", gin.H{"Title": "Ételek kezelése", "Dishes": dishes})
}

// renderForm shows the create or edit form with the category select box
func (dc *dishController) renderForm(c *gin.Context, status int, title, action string, form validation.DishForm, errs []string) {
	categories, err := dc.catalog.ListCategories()
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, status, "crud_form.html", gin.H{
		"Title":      title,
		"Action":     basePath(c) + action,
		"Form":       form,
		"CategoryID": validation.ParseOptionalID(form.CategoryID),
		"Categories": categories,
		"Errors":     errs,
	})
}

func (dc *dishController) New(c *gin.Context) {
	dc.renderForm(c, http.StatusOK, "Új étel", "/crud/uj", validation.DishForm{}, nil)
}

func (dc *dishController) Create(c *gin.Context) {
	var form validation.DishForm
	_ = c.ShouldBind(&form)
	form.Normalize()

	if errs := validation.Check(&form); len(errs) > 0 {
		dc.renderForm(c, http.StatusBadRequest, "Új étel", "/crud/uj", form, errs)
		return
	}
	_, err := dc.dishes.CreateDish(form.Name, validation.ParseOptionalID(form.CategoryID))
	if errors.Is(err, models.ErrCategoryNotFound) {
		dc.renderForm(c, http.StatusBadRequest, "Új étel", "/crud/uj", form, []string{msgUnknownCategory})
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}
	flash(c, auth.FlashSuccess, msgDishCreated)
	redirect(c, "/crud")
}

// loadDish resolves the :id parameter; it renders 404 and returns nil for unknown dishes
func (dc *dishController) loadDish(c *gin.Context) *models.Dish {
	id, ok := paramID(c, "id")
	if !ok {
		NotFound(c)
		return nil
	}
	dish, err := dc.dishes.GetDish(id)
	if errors.Is(err, models.ErrNotFound) {
		NotFound(c)
		return nil
	}
	if err != nil {
		serverError(c, err)
		return nil
	}
	return dish
}

func (dc *dishController) Edit(c *gin.Context) {
	dish := dc.loadDish(c)
	if dish == nil {
		return
	}
	form := validation.DishForm{Name: dish.Name}
	if dish.CategoryID != nil {
		form.CategoryID = fmt.Sprint(*dish.CategoryID)
	}
	dc.renderForm(c, http.StatusOK, "Étel szerkesztése", fmt.Sprintf("/crud/szerkesztes/%d", dish.ID), form, nil)
}

func (dc *dishController) Update(c *gin.Context) {
	dish := dc.loadDish(c)
	if dish == nil {
		return
	}
	var form validation.DishForm
	_ = c.ShouldBind(&form)
	form.Normalize()

	action := fmt.Sprintf("/crud/szerkesztes/%d", dish.ID)
	if errs := validation.Check(&form); len(errs) > 0 {
		dc.renderForm(c, http.StatusBadRequest, "Étel szerkesztése", action, form, errs)
		return
	}
	err := dc.dishes.UpdateDish(dish.ID, form.Name, validation.ParseOptionalID(form.CategoryID))
	switch {
	case errors.Is(err, models.ErrCategoryNotFound):
		dc.renderForm(c, http.StatusBadRequest, "Étel szerkesztése", action, form, []string{msgUnknownCategory})
		return
	case errors.Is(err, models.ErrNotFound):
		NotFound(c)
		return
	case err != nil:
		serverError(c, err)
		return
	}
	flash(c, auth.FlashSuccess, msgDishUpdated)
	redirect(c, "/crud")
}

// ConfirmDelete only renders the confirmation form; deletion needs POST
func (dc *dishController) ConfirmDelete(c *gin.Context) {
	dish := dc.loadDish(c)
	if dish == nil {
		return
	}
	render(c, http.StatusOK, "crud_torles.html", gin.H{"Title": "Étel törlése", "Dish": dish})
}

func (dc *dishController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		NotFound(c)
		return
	}
	err := dc.dishes.DeleteDish(id)
	if errors.Is(err, models.ErrNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}
	flash(c, auth.FlashSuccess, msgDishDeleted)
	redirect(c, "/crud")
}

// Ingredients shows the lines of one dish and the add form
func (dc *dishController) Ingredients(c *gin.Context) {
	dish := dc.loadDish(c)
	if dish == nil {
		return
	}
	items, err := dc.lines.ListDishIngredients(dish.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	ingredients, err := dc.catalog.ListIngredients()
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "crud_hozzavalok.html", gin.H{
		"Title":       dish.Name + " hozzávalói",
		"Dish":        dish,
		"Items":       items,
		"Ingredients": ingredients,
	})
}

func ingredientsPath(dishID uint) string {
	return fmt.Sprintf("/crud/hozzavalok/%d", dishID)
}

// AddIngredient links an ingredient; bad input is reported as a notice on the management page
func (dc *dishController) AddIngredient(c *gin.Context) {
	dish := dc.loadDish(c)
	if dish == nil {
		return
	}
	var form validation.DishIngredientForm
	_ = c.ShouldBind(&form)

	ingredientID := validation.ParseOptionalID(form.IngredientID)
	if ingredientID == nil {
		flash(c, auth.FlashError, msgPickIngredient)
		redirect(c, ingredientsPath(dish.ID))
		return
	}
	if errs := validation.Check(&form); len(errs) > 0 {
		for _, e := range errs {
			flash(c, auth.FlashError, e)
		}
		redirect(c, ingredientsPath(dish.ID))
		return
	}

	err := dc.lines.AddDishIngredient(dish.ID, *ingredientID,
		validation.ParseQuantity(form.Quantity), validation.OptionalString(form.Unit))
	switch {
	case errors.Is(err, models.ErrIngredientNotFound):
		flash(c, auth.FlashError, msgUnknownIngredient)
	case errors.Is(err, models.ErrDuplicateIngredient):
		flash(c, auth.FlashError, msgDuplicateLine)
	case errors.Is(err, models.ErrNotFound):
		NotFound(c)
		return
	case err != nil:
		serverError(c, err)
		return
	default:
		flash(c, auth.FlashSuccess, msgIngredientAdded)
	}
	redirect(c, ingredientsPath(dish.ID))
}

// lineParams resolves :id and :hid; it renders 404 when either is malformed
func lineParams(c *gin.Context) (dishID, ingredientID uint, ok bool) {
	if dishID, ok = paramID(c, "id"); !ok {
		NotFound(c)
		return 0, 0, false
	}
	if ingredientID, ok = paramID(c, "hid"); !ok {
		NotFound(c)
		return 0, 0, false
	}
	return dishID, ingredientID, true
}

func (dc *dishController) UpdateIngredient(c *gin.Context) {
	dishID, ingredientID, ok := lineParams(c)
	if !ok {
		return
	}
	var form validation.DishIngredientForm
	_ = c.ShouldBind(&form)
	if errs := validation.Check(&form); len(errs) > 0 {
		for _, e := range errs {
			flash(c, auth.FlashError, e)
		}
		redirect(c, ingredientsPath(dishID))
		return
	}

	err := dc.lines.UpdateDishIngredient(dishID, ingredientID,
		validation.ParseQuantity(form.Quantity), validation.OptionalString(form.Unit))
	if errors.Is(err, models.ErrNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}
	flash(c, auth.FlashSuccess, msgIngredientUpdated)
	redirect(c, ingredientsPath(dishID))
}

func (dc *dishController) RemoveIngredient(c *gin.Context) {
	dishID, ingredientID, ok := lineParams(c)
	if !ok {
		return
	}
	err := dc.lines.RemoveDishIngredient(dishID, ingredientID)
	if errors.Is(err, models.ErrNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}
	flash(c, auth.FlashSuccess, msgIngredientRemoved)
	redirect(c, ingredientsPath(dishID))
}
