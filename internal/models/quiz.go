package models

import "time"

// Quiz difficulties.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question kinds. Multiple choice and true/false are auto-graded;
// short answer and essay wait for manual review.
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionShortAnswer    = "short_answer"
	QuestionEssay          = "essay"
)

// QuizModel is a generated quiz for a material.
type QuizModel struct {
	Owned
	MaterialID string              `json:"material_id" gorm:"type:char(36);index;not null"`
	Title      string              `json:"title"       gorm:"size:191;not null"`
	Difficulty string              `json:"difficulty"  gorm:"size:32;default:medium"`
	Questions  []QuizQuestionModel `json:"questions"   gorm:"foreignKey:QuizID"`
}

func (QuizModel) TableName() string { return "quizzes" }

// QuizOption is one selectable option of an objective question.
type QuizOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuizQuestionModel is a single question inside a quiz.
// Options is populated for objective kinds; CorrectAnswer holds the
// normalized expected value used by grading.
type QuizQuestionModel struct {
	Base
	QuizID        string       `json:"quiz_id"        gorm:"type:char(36);index;not null"`
	Position      int          `json:"position"       gorm:"not null"`
	Kind          string       `json:"kind"           gorm:"size:32;not null"`
	Prompt        string       `json:"prompt"         gorm:"type:text;not null"`
	Options       []QuizOption `json:"options"        gorm:"type:longtext;serializer:json"`
	CorrectAnswer string       `json:"correct_answer" gorm:"type:text"`
	Points        int          `json:"points"         gorm:"not null;default:1"`
}

func (QuizQuestionModel) TableName() string { return "quiz_questions" }

// IsObjective reports whether the question kind is auto-gradable.
func (q QuizQuestionModel) IsObjective() bool {
	return q.Kind == QuestionMultipleChoice || q.Kind == QuestionTrueFalse
}

// QuizSubmissionModel records one graded attempt at a quiz.
type QuizSubmissionModel struct {
	Owned
	QuizID   string                  `json:"quiz_id"   gorm:"type:char(36);index;not null"`
	Score    int                     `json:"score"     gorm:"not null"`
	MaxScore int                     `json:"max_score" gorm:"not null"`
	GradedAt *time.Time              `json:"graded_at"`
	Answers  []SubmissionAnswerModel `json:"answers"   gorm:"foreignKey:SubmissionID"`
}

func (QuizSubmissionModel) TableName() string { return "quiz_submissions" }

// SubmissionAnswerModel is one answer within a submission. IsCorrect
// stays null for subjective kinds until a manual review assigns it.
type SubmissionAnswerModel struct {
	Base
	SubmissionID string `json:"submission_id" gorm:"type:char(36);index;not null"`
	QuestionID   string `json:"question_id"   gorm:"type:char(36);index;not null"`
	Value        string `json:"value"         gorm:"type:text"`
	IsCorrect    *bool  `json:"is_correct"`
	PointsEarned int    `json:"points_earned" gorm:"not null;default:0"`
	Skipped      bool   `json:"skipped"       gorm:"not null;default:false"`
}

func (SubmissionAnswerModel) TableName() string { return "quiz_submission_answers" }

// ValidDifficulty reports whether d is one of the accepted values.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
