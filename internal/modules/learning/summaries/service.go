package summaries

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/revyse/core/internal/models"
	"github.com/revyse/core/internal/modules/content/materials"
	"github.com/revyse/core/internal/modules/learning/streaks"
	"github.com/revyse/core/internal/modules/processing/ai"
)

// Service produces and stores material summaries. Generation goes through
// the orchestrator; a repeated request for the same material and type is
// served from its cache.
type Service struct {
	db        *gorm.DB
	aiSvc     *ai.Service
	matSvc    *materials.Service
	streakSvc *streaks.Service
	log       *zap.Logger
}

func NewService(db *gorm.DB, aiSvc *ai.Service, matSvc *materials.Service, streakSvc *streaks.Service, log *zap.Logger) *Service {
	return &Service{db: db, aiSvc: aiSvc, matSvc: matSvc, streakSvc: streakSvc, log: log}
}

// Generate creates a summary for a material and records study activity.
func (s *Service) Generate(ctx context.Context, userID string, dto generateSummaryDTO) (*models.SummaryModel, ai.Meta, error) {
	summaryType := dto.SummaryType
	if !models.ValidSummaryType(summaryType) {
		summaryType = models.SummaryBrief
	}

	material, err := s.matSvc.GetReady(userID, dto.MaterialID)
	if err != nil {
		return nil, ai.Meta{}, err
	}

	artifact, meta, err := s.aiSvc.GenerateSummary(ctx, material.ExtractedText, summaryType)
	if err != nil {
		return nil, meta, err
	}

	model := models.SummaryModel{
		Owned:       models.Owned{UserID: userID},
		MaterialID:  material.ID,
		SummaryType: summaryType,
		Content:     artifact.Content,
	}
	if err := s.db.Create(&model).Error; err != nil {
		return nil, meta, err
	}

	s.recordActivity(userID)
	return &model, meta, nil
}

func (s *Service) ListByMaterial(userID, materialID string) ([]models.SummaryModel, error) {
	var items []models.SummaryModel
	err := s.db.
		Where("user_id = ? AND material_id = ?", userID, materialID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (s *Service) Get(userID, id string) (*models.SummaryModel, error) {
	var model models.SummaryModel
	if err := s.db.First(&model, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}

	// viewing a summary counts as study activity
	s.recordActivity(userID)
	return &model, nil
}

func (s *Service) Delete(userID, id string) error {
	result := s.db.Delete(&models.SummaryModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Service) recordActivity(userID string) {
	if _, err := s.streakSvc.RecordActivity(userID, time.Now()); err != nil {
		s.log.Warn("streak activity not recorded", zap.String("user_id", userID), zap.Error(err))
	}
}
