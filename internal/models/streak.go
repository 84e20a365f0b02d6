package models

import "time"

// ReadingStreakModel is the per-user activity streak, created lazily on
// first activity. LongestStreak is a monotonic high-water mark and never
// drops below CurrentStreak.
type ReadingStreakModel struct {
	Base
	UserID          string     `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	CurrentStreak   int        `json:"current_streak"    gorm:"not null;default:0"`
	LongestStreak   int        `json:"longest_streak"    gorm:"not null;default:0"`
	TotalActiveDays int        `json:"total_active_days" gorm:"not null;default:0"`
	LastActivityAt  *time.Time `json:"last_activity_at"`
}

func (ReadingStreakModel) TableName() string { return "reading_streaks" }
