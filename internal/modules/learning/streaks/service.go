package streaks

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/revyse/core/internal/models"
	"github.com/revyse/core/internal/pkg/streak"
)

// Service persists per-user reading streaks. The transition itself lives
// in the streak package; this layer adds lazy creation and row locking so
// concurrent activity from the same user cannot lose an update.
type Service struct {
	db          *gorm.DB
	atRiskAfter time.Duration
}

func NewService(db *gorm.DB, atRiskAfter time.Duration) *Service {
	if atRiskAfter <= 0 {
		atRiskAfter = streak.DefaultAtRiskAfter
	}
	return &Service{db: db, atRiskAfter: atRiskAfter}
}

// RecordActivity applies one activity event at now for the user.
func (s *Service) RecordActivity(userID string, now time.Time) (*models.ReadingStreakModel, error) {
	var model models.ReadingStreakModel

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&model).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			model = models.ReadingStreakModel{UserID: userID}
			if err := tx.Create(&model).Error; err != nil {
				// lost the creation race, lock the winner's row
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					Where("user_id = ?", userID).
					First(&model).Error; err != nil {
					return err
				}
			}
		} else if err != nil {
			return err
		}

		next := streak.Record(toState(model), now)
		fromState(&model, next)
		return tx.Save(&model).Error
	})
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// Get loads the user's streak, returning a zero-value streak when none
// exists yet.
func (s *Service) Get(userID string) (*models.ReadingStreakModel, error) {
	var model models.ReadingStreakModel
	err := s.db.Where("user_id = ?", userID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ReadingStreakModel{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// Status derives the read-only streak view at now.
func (s *Service) Status(userID string, now time.Time) (*models.ReadingStreakModel, streak.Status, error) {
	model, err := s.Get(userID)
	if err != nil {
		return nil, streak.Status{}, err
	}
	return model, streak.Evaluate(toState(*model), now, s.atRiskAfter), nil
}

// ListAtRisk returns streaks inside the at-risk window at now, used by
// the nudge sweep.
func (s *Service) ListAtRisk(now time.Time, limit int) ([]models.ReadingStreakModel, error) {
	lower := now.Add(-streak.BreakAfter)
	upper := now.Add(-s.atRiskAfter)

	var items []models.ReadingStreakModel
	err := s.db.
		Where("last_activity_at > ? AND last_activity_at <= ?", lower, upper).
		Where("current_streak > 0").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func toState(m models.ReadingStreakModel) streak.State {
	return streak.State{
		CurrentStreak:   m.CurrentStreak,
		LongestStreak:   m.LongestStreak,
		TotalActiveDays: m.TotalActiveDays,
		LastActivityAt:  m.LastActivityAt,
	}
}

func fromState(m *models.ReadingStreakModel, s streak.State) {
	m.CurrentStreak = s.CurrentStreak
	m.LongestStreak = s.LongestStreak
	m.TotalActiveDays = s.TotalActiveDays
	m.LastActivityAt = s.LastActivityAt
}
