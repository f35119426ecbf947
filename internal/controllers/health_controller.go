package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthController reports liveness and database reachability
type HealthController interface {
	Check(c *gin.Context)
}

type healthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) HealthController {
	return &healthController{db: db}
}

// Check handles the health check endpoint
func (hc *healthController) Check(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	database := "up"
	if sqlDB, err := hc.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status, code, database = "unhealthy", http.StatusServiceUnavailable, "down"
	}
	c.JSON(code, gin.H{
		"status":    status,
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-recipe-catalog",
	})
}
