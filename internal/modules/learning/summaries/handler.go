package summaries

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/revyse/core/internal/middleware"
	"github.com/revyse/core/internal/modules/processing/ai"
	"github.com/revyse/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/summaries", authMW)
	g.POST("", h.generate)
	g.GET("/material/:id", h.listByMaterial)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.delete)
}

// POST /summaries  [auth]
func (h *Handler) generate(c *gin.Context) {
	var dto generateSummaryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	model, meta, err := h.svc.Generate(c.Request.Context(), middleware.CurrentUserID(c), dto)
	if err != nil {
		writeGenerationError(c, err)
		return
	}
	response.Created(c, gin.H{"summary": model, "meta": meta})
}

// GET /summaries/material/:id  [auth]
func (h *Handler) listByMaterial(c *gin.Context) {
	items, err := h.svc.ListByMaterial(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

// GET /summaries/:id  [auth]
func (h *Handler) get(c *gin.Context) {
	model, err := h.svc.Get(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, model)
}

// DELETE /summaries/:id  [auth]
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// writeGenerationError maps orchestrator failures onto HTTP statuses.
func writeGenerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFoundMsg(c, "material not found")
	case errors.Is(err, ai.ErrProviderUnavailable):
		response.ServiceUnavailable(c, err.Error())
	default:
		response.BadRequest(c, err.Error())
	}
}
