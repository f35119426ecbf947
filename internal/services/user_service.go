package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/auth"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"gorm.io/gorm"
)

// RegistrationInput carries an already validated sign-up form
type RegistrationInput struct {
	Name     string
	Email    string
	Password string
}

type UserService interface {
	// Register hashes the password and stores a new user; ErrUserExists if the email is taken
	Register(input RegistrationInput) (*models.User, error)
	// Authenticate returns ErrUserNotFound or ErrWrongPassword on failure
	Authenticate(email, password string) (*models.User, error)
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	SetRole(id uint, role string) error
	CountUsers() (int64, error)
}

// UserServiceOptions controls registration policy
type UserServiceOptions struct {
	// FirstUserAdmin gives the admin role to the first account ever registered
	FirstUserAdmin bool
}

type userService struct {
	db     *gorm.DB
	hasher auth.PasswordHasher
	opts   UserServiceOptions
}

func NewUserService(db *gorm.DB, hasher auth.PasswordHasher, opts UserServiceOptions) UserService {
	return &userService{db: db, hasher: hasher, opts: opts}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(input RegistrationInput) (*models.User, error) {
	email := normalizeEmail(input.Email)
	if _, err := s.GetUserByEmail(email); err == nil {
		return nil, models.ErrUserExists
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	role := models.RoleRegistered
	if s.opts.FirstUserAdmin {
		count, err := s.CountUsers()
		if err != nil {
			return nil, err
		}
		if count == 0 {
			role = models.RoleAdmin
		}
	}

	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := s.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(user.Password, password) {
		return nil, models.ErrWrongPassword
	}
	return user, nil
}

func (s *userService) CreateUser(user *models.User) error {
	user.Email = normalizeEmail(user.Email)
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

func (s *userService) SetRole(id uint, role string) error {
	result := s.db.Model(&models.User{}).Where("id = ?", id).Update("szerep", role)
	if result.Error != nil {
		return fmt.Errorf("set role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (s *userService) CountUsers() (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
