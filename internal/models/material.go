package models

// Material kinds.
const (
	MaterialKindPDF   = "pdf"
	MaterialKindText  = "text"
	MaterialKindURL   = "url"
	MaterialKindNotes = "notes"
)

// Material statuses.
const (
	MaterialPending = "pending"
	MaterialReady   = "ready"
	MaterialFailed  = "failed"
)

// MaterialModel is a piece of study material. Text extraction happens
// upstream; ExtractedText arrives with the create request.
type MaterialModel struct {
	Owned
	CourseID      *string `json:"course_id"      gorm:"type:char(36);index"`
	Title         string  `json:"title"          gorm:"size:191;not null"`
	Kind          string  `json:"kind"           gorm:"size:32;not null"`
	ExtractedText string  `json:"extracted_text" gorm:"type:longtext"`
	Status        string  `json:"status"         gorm:"size:32;default:pending"`
}

func (MaterialModel) TableName() string { return "materials" }

// ValidMaterialKind reports whether kind is one of the accepted values.
func ValidMaterialKind(kind string) bool {
	switch kind {
	case MaterialKindPDF, MaterialKindText, MaterialKindURL, MaterialKindNotes:
		return true
	}
	return false
}
