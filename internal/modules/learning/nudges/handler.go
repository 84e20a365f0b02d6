package nudges

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/revyse/core/internal/middleware"
	"github.com/revyse/core/internal/models"
	"github.com/revyse/core/internal/modules/processing/ai"
	"github.com/revyse/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/nudges", authMW)
	g.POST("/generate", h.generate)
	g.GET("", h.list)
	g.GET("/today", h.today)
	g.PUT("/:id/read", h.markRead)
}

// POST /nudges/generate?type=daily|orientation  [auth]
func (h *Handler) generate(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var (
		nudge *models.NudgeModel
		meta  ai.Meta
		err   error
	)
	switch c.DefaultQuery("type", models.NudgeDaily) {
	case models.NudgeOrientation:
		nudge, meta, err = h.svc.Orientation(c.Request.Context(), userID)
	case models.NudgeDaily:
		nudge, meta, err = h.svc.Generate(c.Request.Context(), userID)
	default:
		response.BadRequest(c, "invalid nudge type")
		return
	}
	if err != nil {
		writeNudgeError(c, err)
		return
	}
	response.Created(c, gin.H{"nudge": nudge, "meta": meta})
}

// GET /nudges  [auth]
func (h *Handler) list(c *gin.Context) {
	unreadOnly := c.Query("unread_only") == "1" || c.Query("unread_only") == "true"
	items, err := h.svc.List(middleware.CurrentUserID(c), unreadOnly)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

// GET /nudges/today  [auth]
func (h *Handler) today(c *gin.Context) {
	nudge, err := h.svc.Today(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		writeNudgeError(c, err)
		return
	}
	response.OK(c, nudge)
}

// PUT /nudges/:id/read  [auth]
func (h *Handler) markRead(c *gin.Context) {
	nudge, err := h.svc.MarkRead(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, nudge)
}

func writeNudgeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(c)
	case errors.Is(err, ai.ErrProviderUnavailable):
		response.ServiceUnavailable(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
