package nudges

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/revyse/core/internal/models"
	"github.com/revyse/core/internal/modules/learning/streaks"
	"github.com/revyse/core/internal/modules/processing/ai"
	"github.com/revyse/core/internal/pkg/streak"
)

// fallbackMessage is sent when every provider fails during a sweep. A
// sweep must not silently skip an at-risk user.
const fallbackMessage = "Your streak is about to end. A few minutes of review today keeps it alive."

// Service creates motivational nudges, on demand and from the at-risk
// sweep.
type Service struct {
	db        *gorm.DB
	aiSvc     *ai.Service
	streakSvc *streaks.Service
	log       *zap.Logger
}

func NewService(db *gorm.DB, aiSvc *ai.Service, streakSvc *streaks.Service, log *zap.Logger) *Service {
	return &Service{db: db, aiSvc: aiSvc, streakSvc: streakSvc, log: log}
}

// Generate produces a fresh daily nudge for the user.
func (s *Service) Generate(ctx context.Context, userID string) (*models.NudgeModel, ai.Meta, error) {
	var user models.UserModel
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ai.Meta{}, err
	}

	model, status, err := s.streakSvc.Status(userID, time.Now())
	if err != nil {
		return nil, ai.Meta{}, err
	}

	artifact, meta, err := s.aiSvc.GenerateNudge(ctx, user.DisplayName, streakContext(model, status))
	if err != nil {
		return nil, meta, err
	}

	nudge, err := s.persist(userID, artifact.Message, models.NudgeDaily)
	if err != nil {
		return nil, meta, err
	}
	return nudge, meta, nil
}

// Orientation produces the level-specific welcome message. It is cached
// per academic level, so repeated signups at the same level cost one
// model call in total.
func (s *Service) Orientation(ctx context.Context, userID string) (*models.NudgeModel, ai.Meta, error) {
	var user models.UserModel
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ai.Meta{}, err
	}

	artifact, meta, err := s.aiSvc.GenerateOrientation(ctx, user.AcademicLevel)
	if err != nil {
		return nil, meta, err
	}

	nudge, err := s.persist(userID, artifact.Message, models.NudgeOrientation)
	if err != nil {
		return nil, meta, err
	}
	return nudge, meta, nil
}

// Today returns the user's daily nudge for the current UTC day,
// generating one if none exists yet.
func (s *Service) Today(ctx context.Context, userID string) (*models.NudgeModel, error) {
	if nudge, ok, err := s.sentToday(userID, time.Now()); err != nil {
		return nil, err
	} else if ok {
		return nudge, nil
	}

	nudge, _, err := s.Generate(ctx, userID)
	return nudge, err
}

func (s *Service) List(userID string, unreadOnly bool) ([]models.NudgeModel, error) {
	q := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var items []models.NudgeModel
	err := q.Order("sent_at DESC").Limit(100).Find(&items).Error
	return items, err
}

func (s *Service) MarkRead(userID, id string) (*models.NudgeModel, error) {
	var nudge models.NudgeModel
	if err := s.db.First(&nudge, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	if !nudge.IsRead {
		nudge.IsRead = true
		if err := s.db.Model(&nudge).Update("is_read", true).Error; err != nil {
			return nil, err
		}
	}
	return &nudge, nil
}

// SweepAtRisk nudges every user whose streak is inside the at-risk
// window and who has not been nudged today. Run from the scheduler.
func (s *Service) SweepAtRisk(ctx context.Context) (int, error) {
	now := time.Now()
	atRisk, err := s.streakSvc.ListAtRisk(now, 500)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, st := range atRisk {
		if _, ok, err := s.sentToday(st.UserID, now); err != nil {
			s.log.Warn("nudge sweep lookup failed", zap.String("user_id", st.UserID), zap.Error(err))
			continue
		} else if ok {
			continue
		}

		if _, _, err := s.Generate(ctx, st.UserID); err != nil {
			s.log.Warn("nudge generation failed, using fallback",
				zap.String("user_id", st.UserID), zap.Error(err))
			if _, err := s.persist(st.UserID, fallbackMessage, models.NudgeDaily); err != nil {
				s.log.Warn("fallback nudge not saved", zap.String("user_id", st.UserID), zap.Error(err))
				continue
			}
		}
		sent++
	}
	return sent, nil
}

func (s *Service) persist(userID, message, nudgeType string) (*models.NudgeModel, error) {
	nudge := models.NudgeModel{
		Owned:     models.Owned{UserID: userID},
		Message:   message,
		NudgeType: nudgeType,
		SentAt:    time.Now(),
	}
	if err := s.db.Create(&nudge).Error; err != nil {
		return nil, err
	}
	return &nudge, nil
}

func (s *Service) sentToday(userID string, now time.Time) (*models.NudgeModel, bool, error) {
	dayStart := now.UTC().Truncate(24 * time.Hour)

	var nudge models.NudgeModel
	err := s.db.
		Where("user_id = ? AND nudge_type = ? AND sent_at >= ?", userID, models.NudgeDaily, dayStart).
		Order("sent_at DESC").
		First(&nudge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &nudge, true, nil
}

func streakContext(m *models.ReadingStreakModel, status streak.Status) string {
	hours := int(status.TimeUntilBreak / time.Hour)
	return fmt.Sprintf("current streak %d days, longest %d days, phase %s, about %d hours until the streak breaks",
		m.CurrentStreak, m.LongestStreak, status.Phase, hours)
}
