package models

// Academic levels accepted for a user profile.
const (
	LevelHighSchool   = "high_school"
	LevelCollege      = "college"
	LevelGraduate     = "graduate"
	LevelProfessional = "professional"
)

// UserModel is a registered account.
type UserModel struct {
	Base
	Email         string `json:"email"          gorm:"size:191;uniqueIndex;not null"`
	PasswordHash  string `json:"-"              gorm:"size:191;not null"`
	DisplayName   string `json:"display_name"   gorm:"size:191"`
	AcademicLevel string `json:"academic_level" gorm:"size:32;default:college"`
}

func (UserModel) TableName() string { return "users" }

// ValidAcademicLevel reports whether level is one of the accepted values.
func ValidAcademicLevel(level string) bool {
	switch level {
	case LevelHighSchool, LevelCollege, LevelGraduate, LevelProfessional:
		return true
	}
	return false
}
