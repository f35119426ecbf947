package services

import (
	"fmt"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"gorm.io/gorm"
)

type MessageService interface {
	CreateMessage(message *models.Message) error
	// ListMessages returns the newest submissions first
	ListMessages() ([]models.Message, error)
	CountMessages() (int64, error)
}

type messageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) MessageService {
	return &messageService{db: db}
}

func (s *messageService) CreateMessage(message *models.Message) error {
	if err := s.db.Create(message).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (s *messageService) ListMessages() ([]models.Message, error) {
	var messages []models.Message
	if err := s.db.Order("bekuldve DESC, id DESC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (s *messageService) CountMessages() (int64, error) {
	var count int64
	err := s.db.Model(&models.Message{}).Count(&count).Error
	return count, err
}
