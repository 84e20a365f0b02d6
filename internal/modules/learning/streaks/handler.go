package streaks

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/revyse/core/internal/middleware"
	"github.com/revyse/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/streaks", authMW)
	g.GET("", h.get)
	g.POST("/record", h.record)
	g.GET("/status", h.status)
}

// GET /streaks  [auth]
func (h *Handler) get(c *gin.Context) {
	model, err := h.svc.Get(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, model)
}

// POST /streaks/record  [auth]
func (h *Handler) record(c *gin.Context) {
	model, err := h.svc.RecordActivity(middleware.CurrentUserID(c), time.Now())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, model)
}

// GET /streaks/status  [auth]
func (h *Handler) status(c *gin.Context) {
	model, st, err := h.svc.Status(middleware.CurrentUserID(c), time.Now())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"streak":              model,
		"phase":               st.Phase,
		"time_until_break_ms": st.TimeUntilBreak.Milliseconds(),
	})
}
