package courses

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/revyse/core/internal/middleware"
	"github.com/revyse/core/internal/models"
	"github.com/revyse/core/internal/pkg/pagination"
	"github.com/revyse/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/courses", authMW)
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

// POST /courses  [auth]
func (h *Handler) create(c *gin.Context) {
	var dto createCourseDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	course, err := h.svc.Create(middleware.CurrentUserID(c), dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, course)
}

// GET /courses  [auth]
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	tx := h.svc.db.Model(&models.CourseModel{}).
		Where("user_id = ?", middleware.CurrentUserID(c)).
		Order("created_at DESC")

	var items []models.CourseModel
	pag, err := pagination.Paginate(tx, q, &items)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

// GET /courses/:id  [auth]
func (h *Handler) get(c *gin.Context) {
	course, err := h.svc.Get(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, course)
}

// PUT /courses/:id  [auth]
func (h *Handler) update(c *gin.Context) {
	var dto updateCourseDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	course, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), dto)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, course)
}

// DELETE /courses/:id  [auth]
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
