package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminController serves the admin dashboard
type AdminController interface {
	Dashboard(c *gin.Context)
}

type adminController struct {
	stats services.StatsService
}

func NewAdminController(stats services.StatsService) AdminController {
	return &adminController{stats: stats}
}

// Dashboard shows the user, message and dish counts
func (ac *adminController) Dashboard(c *gin.Context) {
	stats, err := ac.stats.Summary()
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "admin.html", gin.H{"Title": "Admin", "Stats": stats})
}
