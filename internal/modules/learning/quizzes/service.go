package quizzes

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/revyse/core/internal/models"
	"github.com/revyse/core/internal/modules/content/materials"
	"github.com/revyse/core/internal/modules/learning/streaks"
	"github.com/revyse/core/internal/modules/processing/ai"
	"github.com/revyse/core/internal/pkg/grading"
)

// Service generates quizzes via the orchestrator and grades submissions
// with the grading engine.
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

// Generate creates a quiz for a material.
func (s *Service) Generate(ctx context.Context, userID string, dto generateQuizDTO) (*models.QuizModel, ai.Meta, error) {
	material, err := s.matSvc.GetReady(userID, dto.MaterialID)
	if err != nil {
		return nil, ai.Meta{}, err
	}

	difficulty := dto.Difficulty
	if !models.ValidDifficulty(difficulty) {
		difficulty = models.DifficultyMedium
	}

	artifact, meta, err := s.aiSvc.GenerateQuiz(ctx, material.ExtractedText, difficulty, dto.Count)
	if err != nil {
		return nil, meta, err
	}

	title := artifact.Title
	if title == "" {
		title = material.Title
	}

	quiz := models.QuizModel{
		Owned:      models.Owned{UserID: userID},
		MaterialID: material.ID,
		Title:      title,
		Difficulty: difficulty,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		questions := make([]models.QuizQuestionModel, 0, len(artifact.Questions))
		for i, q := range artifact.Questions {
			options := make([]models.QuizOption, 0, len(q.Options))
			for _, opt := range q.Options {
				options = append(options, models.QuizOption{
					ID:        opt.ID,
					Text:      opt.Text,
					IsCorrect: opt.IsCorrect,
				})
			}
			questions = append(questions, models.QuizQuestionModel{
				QuizID:        quiz.ID,
				Position:      i + 1,
				Kind:          q.Kind,
				Prompt:        q.Prompt,
				Options:       options,
				CorrectAnswer: q.CorrectAnswer,
				Points:        q.Points,
			})
		}
		if err := tx.Create(&questions).Error; err != nil {
			return err
		}
		quiz.Questions = questions
		return nil
	})
	if err != nil {
		return nil, meta, err
	}
	return &quiz, meta, nil
}

func (s *Service) Get(userID, id string) (*models.QuizModel, error) {
	var quiz models.QuizModel
	err := s.db.
		Preload("Questions", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		First(&quiz, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// GetForView hides the answer key until the user has submitted at least
// once.
func (s *Service) GetForView(userID, id string) (*models.QuizModel, error) {
	quiz, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	var attempts int64
	err = s.db.Model(&models.QuizSubmissionModel{}).
		Where("quiz_id = ? AND user_id = ?", quiz.ID, userID).
		Count(&attempts).Error
	if err != nil {
		return nil, err
	}
	if attempts == 0 {
		for i := range quiz.Questions {
			quiz.Questions[i].CorrectAnswer = ""
			for j := range quiz.Questions[i].Options {
				quiz.Questions[i].Options[j].IsCorrect = false
			}
		}
	}
	return quiz, nil
}

func (s *Service) ListByMaterial(userID, materialID string) ([]models.QuizModel, error) {
	var items []models.QuizModel
	err := s.db.
		Where("user_id = ? AND material_id = ?", userID, materialID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// Submit grades a submission against the quiz's answer key and persists
// the result. Taking a quiz counts as study activity.
func (s *Service) Submit(userID, quizID string, dto submitQuizDTO) (*models.QuizSubmissionModel, error) {
	quiz, err := s.Get(userID, quizID)
	if err != nil {
		return nil, err
	}

	key := make([]grading.Question, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		opts := make([]string, 0, len(q.Options))
		for _, o := range q.Options {
			opts = append(opts, o.ID)
		}
		key = append(key, grading.Question{
			ID:            q.ID,
			Kind:          q.Kind,
			Points:        q.Points,
			CorrectAnswer: q.CorrectAnswer,
			Options:       opts,
		})
	}

	answers := make([]grading.Answer, 0, len(dto.Answers))
	for _, a := range dto.Answers {
		answers = append(answers, grading.Answer{QuestionID: a.QuestionID, Value: a.Value})
	}

	result := grading.Grade(answers, key)
	now := time.Now()

	submission := models.QuizSubmissionModel{
		Owned:    models.Owned{UserID: userID},
		QuizID:   quiz.ID,
		Score:    result.Score,
		MaxScore: result.MaxScore,
		GradedAt: &now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}
		rows := make([]models.SubmissionAnswerModel, 0, len(result.Answers))
		for _, a := range result.Answers {
			rows = append(rows, models.SubmissionAnswerModel{
				SubmissionID: submission.ID,
				QuestionID:   a.QuestionID,
				Value:        a.Value,
				IsCorrect:    a.IsCorrect,
				PointsEarned: a.PointsEarned,
				Skipped:      a.Skipped,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		submission.Answers = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.streakSvc.RecordActivity(userID, now); err != nil {
		s.log.Warn("streak activity not recorded", zap.String("user_id", userID), zap.Error(err))
	}
	return &submission, nil
}

func (s *Service) ListSubmissions(userID, quizID string) ([]models.QuizSubmissionModel, error) {
	var items []models.QuizSubmissionModel
	err := s.db.
		Preload("Answers").
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (s *Service) Delete(userID, id string) error {
	result := s.db.Delete(&models.QuizModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
