package materials

type createMaterialDTO struct {
	CourseID      string `json:"course_id"`
	Title         string `json:"title" binding:"required,max=191"`
	Kind          string `json:"kind"  binding:"required"`
	ExtractedText string `json:"extracted_text"`
}

type updateMaterialDTO struct {
	CourseID      *string `json:"course_id"`
	Title         *string `json:"title"`
	ExtractedText *string `json:"extracted_text"`
}
