package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/revyse/core/internal/pkg/jwt"
	"github.com/revyse/core/internal/pkg/response"
)

const ContextKeyUserID = "user_id"

// Auth returns a middleware that enforces JWT authentication.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := validateToken(extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

func validateToken(rawToken string) (*jwt.Claims, error) {
	token := normalizeToken(rawToken)
	if token == "" {
		return nil, errors.New("token is required")
	}
	return jwt.Parse(token)
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return auth
	}
	return c.Query("token")
}

// normalizeToken trims spaces and strips the optional Bearer prefix.
func normalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
