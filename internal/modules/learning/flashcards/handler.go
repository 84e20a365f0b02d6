package flashcards

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/revyse/core/internal/middleware"
	"github.com/revyse/core/internal/modules/processing/ai"
	"github.com/revyse/core/internal/pkg/mastery"
	"github.com/revyse/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/flashcards", authMW)
	g.POST("/generate", h.generate)
	g.POST("/batch", h.batch)
	g.GET("/material/:id", h.listByMaterial)
	g.GET("/due", h.due)
	g.POST("/:id/review", h.review)
	g.DELETE("/:id", h.delete)
}

// POST /flashcards/generate  [auth]
func (h *Handler) generate(c *gin.Context) {
	var dto generateFlashcardsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cards, meta, err := h.svc.Generate(c.Request.Context(), middleware.CurrentUserID(c), dto)
	if err != nil {
		writeGenerationError(c, err)
		return
	}
	response.Created(c, gin.H{"flashcards": cards, "meta": meta})
}

// POST /flashcards/batch?async=1  [auth]
func (h *Handler) batch(c *gin.Context) {
	var dto batchFlashcardsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.CurrentUserID(c)
	if async := c.Query("async"); async == "1" || async == "true" {
		task, err := h.svc.EnqueueBatch(c.Request.Context(), userID, dto)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		c.JSON(http.StatusAccepted, task)
		return
	}

	cards, meta, err := h.svc.GenerateBatch(c.Request.Context(), userID, dto)
	if err != nil {
		writeGenerationError(c, err)
		return
	}
	response.Created(c, gin.H{"flashcards": cards, "meta": meta})
}

// GET /flashcards/material/:id  [auth]
func (h *Handler) listByMaterial(c *gin.Context) {
	items, err := h.svc.ListByMaterial(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

// GET /flashcards/due  [auth]
func (h *Handler) due(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	items, err := h.svc.Due(middleware.CurrentUserID(c), limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

// POST /flashcards/:id/review  [auth]
func (h *Handler) review(c *gin.Context) {
	var dto reviewFlashcardDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	card, err := h.svc.Review(middleware.CurrentUserID(c), c.Param("id"), *dto.Quality)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.NotFound(c)
		case errors.Is(err, mastery.ErrInvalidRating):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, card)
}

// DELETE /flashcards/:id  [auth]
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
