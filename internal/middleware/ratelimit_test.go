package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/revyse/core/internal/pkg/jwt"
)

func newRequestContext(t *testing.T, authHeader string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodGet, "/api/v1/courses", nil)
	if err != nil {
		t.Fatal(err)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c.Request = req
	return c
}

func TestRateLimitExemptValidToken(t *testing.T) {
	token, err := jwt.Sign("user-1", time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	c := newRequestContext(t, "Bearer "+token)
	if !rateLimitExempt(c) {
		t.Errorf("request with valid bearer token should be exempt")
	}
}

func TestRateLimitNotExemptWithoutToken(t *testing.T) {
	c := newRequestContext(t, "")
	if rateLimitExempt(c) {
		t.Errorf("anonymous request should not be exempt")
	}
}

func TestRateLimitNotExemptInvalidToken(t *testing.T) {
	c := newRequestContext(t, "Bearer not-a-real-token")
	if rateLimitExempt(c) {
		t.Errorf("request with garbage token should not be exempt")
	}
}

func TestRateLimitNotExemptExpiredToken(t *testing.T) {
	token, err := jwt.Sign("user-1", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	c := newRequestContext(t, "Bearer "+token)
	if rateLimitExempt(c) {
		t.Errorf("request with expired token should not be exempt")
	}
}
