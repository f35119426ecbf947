package services

import (
	"fmt"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
)

// StatsService aggregates counts for the admin page
type StatsService interface {
	Summary() (models.Stats, error)
}

type statsService struct {
	users    UserService
	messages MessageService
	dishes   DishService
}

func NewStatsService(users UserService, messages MessageService, dishes DishService) StatsService {
	return &statsService{users: users, messages: messages, dishes: dishes}
}

func (s *statsService) Summary() (models.Stats, error) {
	var stats models.Stats
	var err error
	if stats.Users, err = s.users.CountUsers(); err != nil {
		return models.Stats{}, fmt.Errorf("count users: %w", err)
	}
	if stats.Messages, err = s.messages.CountMessages(); err != nil {
		return models.Stats{}, fmt.Errorf("count messages: %w", err)
	}
	if stats.Dishes, err = s.dishes.CountDishes(); err != nil {
		return models.Stats{}, fmt.Errorf("count dishes: %w", err)
	}
	return stats, nil
}
