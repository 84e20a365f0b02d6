package models

import "time"

// Nudge types.
const (
	NudgeDaily       = "daily"
	NudgeOrientation = "orientation"
)

// NudgeModel is a short motivational message generated for a user.
type NudgeModel struct {
	Owned
	Message   string    `json:"message"    gorm:"type:text;not null"`
	NudgeType string    `json:"nudge_type" gorm:"size:32;default:daily"`
	IsRead    bool      `json:"is_read"    gorm:"not null;default:false"`
	SentAt    time.Time `json:"sent_at"`
}

func (NudgeModel) TableName() string { return "nudges" }
