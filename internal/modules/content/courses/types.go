package courses

type createCourseDTO struct {
	Name        string `json:"name" binding:"required,max=191"`
	Description string `json:"description"`
	Color       string `json:"color" binding:"max=32"`
}

type updateCourseDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}
