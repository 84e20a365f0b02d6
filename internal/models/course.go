package models

// CourseModel groups materials under a user-defined course.
type CourseModel struct {
	Owned
	Name        string `json:"name"        gorm:"size:191;not null"`
	Description string `json:"description" gorm:"type:text"`
	Color       string `json:"color"       gorm:"size:32"`
}

func (CourseModel) TableName() string { return "courses" }
