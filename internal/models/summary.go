package models

// Summary types.
const (
	SummaryBrief     = "brief"
	SummaryDetailed  = "detailed"
	SummaryKeyPoints = "key_points"
)

// SummaryModel is an AI-generated summary of a material.
type SummaryModel struct {
	Owned
	MaterialID  string `json:"material_id"  gorm:"type:char(36);index;not null"`
	SummaryType string `json:"summary_type" gorm:"size:32;not null"`
	Content     string `json:"content"      gorm:"type:longtext"`
}

func (SummaryModel) TableName() string { return "summaries" }

// ValidSummaryType reports whether t is one of the accepted values.
func ValidSummaryType(t string) bool {
	switch t {
	case SummaryBrief, SummaryDetailed, SummaryKeyPoints:
		return true
	}
	return false
}
