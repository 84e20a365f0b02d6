package auth

import "github.com/revyse/core/internal/models"

type registerDTO struct {
	Email         string `json:"email"          binding:"required,email"`
	Password      string `json:"password"       binding:"required,min=8"`
	DisplayName   string `json:"display_name"`
	AcademicLevel string `json:"academic_level"`
}

type loginDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	Token string            `json:"token"`
	User  *models.UserModel `json:"user"`
}
