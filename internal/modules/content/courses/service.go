package courses

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/revyse/core/internal/models"
)

// Service manages user-owned courses.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Create(userID string, dto createCourseDTO) (*models.CourseModel, error) {
	course := models.CourseModel{
		Owned:       models.Owned{UserID: userID},
		Name:        strings.TrimSpace(dto.Name),
		Description: strings.TrimSpace(dto.Description),
		Color:       strings.TrimSpace(dto.Color),
	}
	if err := s.db.Create(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *Service) Get(userID, id string) (*models.CourseModel, error) {
	var course models.CourseModel
	if err := s.db.First(&course, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *Service) Update(userID, id string, dto updateCourseDTO) (*models.CourseModel, error) {
	course, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, errors.New("name cannot be empty")
		}
		course.Name = name
	}
	if dto.Description != nil {
		course.Description = strings.TrimSpace(*dto.Description)
	}
	if dto.Color != nil {
		course.Color = strings.TrimSpace(*dto.Color)
	}

	if err := s.db.Save(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

func (s *Service) Delete(userID, id string) error {
	result := s.db.Delete(&models.CourseModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
