package models

import "time"

// FlashcardModel is a generated flashcard with its spaced-repetition state.
// MasteryLevel stays within [0, 5] and is only updated through a review.
type FlashcardModel struct {
	Owned
	MaterialID     string     `json:"material_id"      gorm:"type:char(36);index;not null"`
	Front          string     `json:"front"            gorm:"type:text;not null"`
	Back           string     `json:"back"             gorm:"type:text;not null"`
	ReviewCount    int        `json:"review_count"     gorm:"not null;default:0"`
	MasteryLevel   int        `json:"mastery_level"    gorm:"not null;default:0"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
}

func (FlashcardModel) TableName() string { return "flashcards" }
