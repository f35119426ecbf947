package controllers

import (
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/auth"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/middleware"
	"github.com/gin-gonic/gin"
)

// basePath is the route prefix set by middleware.BasePath
func basePath(c *gin.Context) string {
	return c.GetString(middleware.ContextBasePathKey)
}

// render merges the layout data (user, flashes, base path) into data and renders the page
func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	success, failure, err := auth.PopFlashes(c)
	if err != nil {
		middleware.Logger(c).WithError(err).Warn("Could not consume flash notices")
	}
	data["User"] = auth.Current(c)
	data["Base"] = basePath(c)
	data["FlashSuccess"] = success
	data["FlashError"] = failure
	c.HTML(status, page, data)
}

// redirect sends the browser to path under the base path with 302
func redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusFound, basePath(c)+path)
}

// flash queues a notice for the next page; a failing session store only loses the notice
func flash(c *gin.Context, kind, message string) {
	if err := auth.AddFlash(c, kind, message); err != nil {
		middleware.Logger(c).WithError(err).Warn("Could not store flash notice")
	}
}

// paramID parses a positive numeric path parameter
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func errorPage(c *gin.Context, status int, title, message string) {
	render(c, status, "error.html", gin.H{"Title": title, "Message": message})
}

// NotFound renders the 404 view; used for unknown ids and as the NoRoute handler
func NotFound(c *gin.Context) {
	errorPage(c, http.StatusNotFound, "Nem található", "A keresett oldal vagy elem nem létezik.")
}

// Forbidden renders the access-denied view for signed-in users without the required role
func Forbidden(c *gin.Context) {
	errorPage(c, http.StatusForbidden, "Hozzáférés megtagadva", "Nincs jogosultságod az oldal megtekintéséhez.")
}

// serverError logs err with the request id and renders a generic failure page
func serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	middleware.Logger(c).WithError(err).Error("Request failed")
	errorPage(c, http.StatusInternalServerError, "Hiba történt", "Váratlan hiba történt, kérjük próbáld újra később.")
}
