package materials

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/revyse/core/internal/models"
)

var ErrInvalidKind = errors.New("invalid material kind")

// Service manages uploaded study materials. Text extraction happens
// upstream; a material is ready once extracted text is present.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Create(userID string, dto createMaterialDTO) (*models.MaterialModel, error) {
	if !models.ValidMaterialKind(dto.Kind) {
		return nil, ErrInvalidKind
	}

	var courseID *string
	if id := strings.TrimSpace(dto.CourseID); id != "" {
		var count int64
		if err := s.db.Model(&models.CourseModel{}).
			Where("id = ? AND user_id = ?", id, userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, gorm.ErrRecordNotFound
		}
		courseID = &id
	}

	text := strings.TrimSpace(dto.ExtractedText)
	status := models.MaterialPending
	if text != "" {
		status = models.MaterialReady
	}

	material := models.MaterialModel{
		Owned:         models.Owned{UserID: userID},
		CourseID:      courseID,
		Title:         strings.TrimSpace(dto.Title),
		Kind:          dto.Kind,
		ExtractedText: text,
		Status:        status,
	}
	if err := s.db.Create(&material).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (s *Service) Get(userID, id string) (*models.MaterialModel, error) {
	var material models.MaterialModel
	if err := s.db.First(&material, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

// GetReady loads a material and requires extracted text to be present.
func (s *Service) GetReady(userID, id string) (*models.MaterialModel, error) {
	material, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if material.Status != models.MaterialReady || strings.TrimSpace(material.ExtractedText) == "" {
		return nil, errors.New("material has no extracted text yet")
	}
	return material, nil
}

func (s *Service) Update(userID, id string, dto updateMaterialDTO) (*models.MaterialModel, error) {
	material, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		title := strings.TrimSpace(*dto.Title)
		if title == "" {
			return nil, errors.New("title cannot be empty")
		}
		material.Title = title
	}
	if dto.CourseID != nil {
		if id := strings.TrimSpace(*dto.CourseID); id == "" {
			material.CourseID = nil
		} else {
			var count int64
			if err := s.db.Model(&models.CourseModel{}).
				Where("id = ? AND user_id = ?", id, userID).
				Count(&count).Error; err != nil {
				return nil, err
			}
			if count == 0 {
				return nil, gorm.ErrRecordNotFound
			}
			material.CourseID = &id
		}
	}
	if dto.ExtractedText != nil {
		material.ExtractedText = strings.TrimSpace(*dto.ExtractedText)
		if material.ExtractedText != "" {
			material.Status = models.MaterialReady
		} else {
			material.Status = models.MaterialPending
		}
	}

	if err := s.db.Save(material).Error; err != nil {
		return nil, err
	}
	return material, nil
}

func (s *Service) Delete(userID, id string) error {
	result := s.db.Delete(&models.MaterialModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
