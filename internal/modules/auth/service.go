package auth

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/revyse/core/internal/models"
	"github.com/revyse/core/internal/pkg/jwt"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service handles account registration and login.
type Service struct {
	db       *gorm.DB
	tokenTTL time.Duration
}

func NewService(db *gorm.DB, tokenTTL time.Duration) *Service {
	return &Service{db: db, tokenTTL: tokenTTL}
}

// Register creates an account and returns a signed session token.
func (s *Service) Register(dto registerDTO) (string, *models.UserModel, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return "", nil, err
	}
	if count > 0 {
		return "", nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	level := strings.TrimSpace(dto.AcademicLevel)
	if !models.ValidAcademicLevel(level) {
		level = models.LevelCollege
	}

	user := models.UserModel{
		Email:         email,
		PasswordHash:  string(hash),
		DisplayName:   strings.TrimSpace(dto.DisplayName),
		AcademicLevel: level,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return "", nil, err
	}

	token, err := jwt.Sign(user.ID, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Login verifies credentials and returns a signed session token.
func (s *Service) Login(dto loginDTO) (string, *models.UserModel, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	var user models.UserModel
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := jwt.Sign(user.ID, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// GetUser loads an account by ID.
func (s *Service) GetUser(id string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
