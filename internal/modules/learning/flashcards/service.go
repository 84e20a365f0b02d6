package flashcards

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/revyse/core/internal/models"
	"github.com/revyse/core/internal/modules/content/materials"
	"github.com/revyse/core/internal/modules/learning/streaks"
	"github.com/revyse/core/internal/modules/processing/ai"
	"github.com/revyse/core/internal/pkg/mastery"
	"github.com/revyse/core/internal/pkg/taskqueue"
)

// Service generates flashcards and drives their review cycle.
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

// Generate creates flashcards for a single material.
func (s *Service) Generate(ctx context.Context, userID string, dto generateFlashcardsDTO) ([]models.FlashcardModel, ai.Meta, error) {
	material, err := s.matSvc.GetReady(userID, dto.MaterialID)
	if err != nil {
		return nil, ai.Meta{}, err
	}

	artifacts, meta, err := s.aiSvc.GenerateFlashcards(ctx, material.ExtractedText, dto.Count)
	if err != nil {
		return nil, meta, err
	}

	cards := make([]models.FlashcardModel, 0, len(artifacts))
	for _, a := range artifacts {
		cards = append(cards, models.FlashcardModel{
			Owned:      models.Owned{UserID: userID},
			MaterialID: material.ID,
			Front:      a.Front,
			Back:       a.Back,
		})
	}
	if err := s.db.Create(&cards).Error; err != nil {
		return nil, meta, err
	}
	return cards, meta, nil
}

// GenerateBatch covers several materials with one model call. Async mode
// hands the work to the task queue and returns the queued task.
func (s *Service) GenerateBatch(ctx context.Context, userID string, dto batchFlashcardsDTO) ([]models.FlashcardModel, ai.Meta, error) {
	batch := make([]ai.BatchMaterial, 0, len(dto.MaterialIDs))
	for _, id := range dto.MaterialIDs {
		material, err := s.matSvc.GetReady(userID, id)
		if err != nil {
			return nil, ai.Meta{}, err
		}
		batch = append(batch, ai.BatchMaterial{ID: material.ID, Content: material.ExtractedText})
	}

	perMaterial, meta, err := s.aiSvc.GenerateFlashcardsBatch(ctx, batch, dto.Count)
	if err != nil {
		return nil, meta, err
	}

	cards := make([]models.FlashcardModel, 0, len(perMaterial)*dto.Count)
	for i, artifacts := range perMaterial {
		for _, a := range artifacts {
			cards = append(cards, models.FlashcardModel{
				Owned:      models.Owned{UserID: userID},
				MaterialID: batch[i].ID,
				Front:      a.Front,
				Back:       a.Back,
			})
		}
	}
	if err := s.db.Create(&cards).Error; err != nil {
		return nil, meta, err
	}
	return cards, meta, nil
}

// EnqueueBatch queues batch generation on the task queue.
func (s *Service) EnqueueBatch(ctx context.Context, userID string, dto batchFlashcardsDTO) (*taskqueue.Task, error) {
	return s.aiSvc.EnqueueFlashcardsBatch(ctx, ai.BatchPayload{
		UserID:      userID,
		MaterialIDs: dto.MaterialIDs,
		Count:       dto.Count,
	})
}

func (s *Service) ListByMaterial(userID, materialID string) ([]models.FlashcardModel, error) {
	var items []models.FlashcardModel
	err := s.db.
		Where("user_id = ? AND material_id = ?", userID, materialID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// Due lists cards that still need work, least mastered first.
func (s *Service) Due(userID string, limit int) ([]models.FlashcardModel, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var items []models.FlashcardModel
	err := s.db.
		Where("user_id = ? AND mastery_level < ?", userID, mastery.MaxLevel).
		Order("mastery_level ASC, last_reviewed_at ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// Review applies a recall rating to a card under a row lock and records
// study activity.
func (s *Service) Review(userID, cardID string, quality int) (*models.FlashcardModel, error) {
	now := time.Now()
	var card models.FlashcardModel

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&card, "id = ? AND user_id = ?", cardID, userID).Error
		if err != nil {
			return err
		}

		if err := applyReview(&card, quality, now); err != nil {
			return err
		}
		return tx.Save(&card).Error
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.streakSvc.RecordActivity(userID, now); err != nil {
		s.log.Warn("streak activity not recorded", zap.String("user_id", userID), zap.Error(err))
	}
	return &card, nil
}

// applyReview advances a card's spaced-repetition state in place. Callers
// hold the card's row lock, so concurrent reviews apply one at a time.
func applyReview(card *models.FlashcardModel, quality int, now time.Time) error {
	state, err := mastery.Review(mastery.State{
		ReviewCount:    card.ReviewCount,
		MasteryLevel:   card.MasteryLevel,
		LastReviewedAt: card.LastReviewedAt,
	}, quality, now)
	if err != nil {
		return err
	}

	card.ReviewCount = state.ReviewCount
	card.MasteryLevel = state.MasteryLevel
	card.LastReviewedAt = state.LastReviewedAt
	return nil
}

func (s *Service) Delete(userID, id string) error {
	result := s.db.Delete(&models.FlashcardModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
