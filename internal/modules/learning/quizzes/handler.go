package quizzes

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
	g := rg.Group("/quizzes", authMW)
	g.POST("/generate", h.generate)
	g.GET("/material/:id", h.listByMaterial)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.delete)
	g.POST("/:id/submit", h.submit)
	g.GET("/:id/submissions", h.listSubmissions)
}

// POST /quizzes/generate  [auth]
func (h *Handler) generate(c *gin.Context) {
	var dto generateQuizDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	quiz, meta, err := h.svc.Generate(c.Request.Context(), middleware.CurrentUserID(c), dto)
	if err != nil {
		writeGenerationError(c, err)
		return
	}
	response.Created(c, gin.H{"quiz": quiz, "meta": meta})
}

// GET /quizzes/material/:id  [auth]
func (h *Handler) listByMaterial(c *gin.Context) {
	items, err := h.svc.ListByMaterial(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

// GET /quizzes/:id  [auth]
// The answer key stays hidden until the quiz has been submitted.
func (h *Handler) get(c *gin.Context) {
	quiz, err := h.svc.GetForView(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, quiz)
}

// DELETE /quizzes/:id  [auth]
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

// POST /quizzes/:id/submit  [auth]
func (h *Handler) submit(c *gin.Context) {
	var dto submitQuizDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	submission, err := h.svc.Submit(middleware.CurrentUserID(c), c.Param("id"), dto)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFoundMsg(c, "quiz not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, submission)
}

// GET /quizzes/:id/submissions  [auth]
func (h *Handler) listSubmissions(c *gin.Context) {
	items, err := h.svc.ListSubmissions(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
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
