package ai

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/revyse/core/internal/pkg/pagination"
	"github.com/revyse/core/internal/pkg/response"
	"github.com/revyse/core/internal/pkg/taskqueue"
)

// Handler exposes the orchestrator's operational surface: usage counters,
// cache administration and async task inspection.
type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/ai", authMW)

	g.GET("/usage", h.getUsage)
	g.POST("/usage/reset", h.resetUsage)

	g.GET("/cache/stats", h.getCacheStats)
	g.DELETE("/cache", h.clearCache)

	tasks := g.Group("/tasks")
	tasks.GET("", h.listTasks)
	tasks.GET("/:id", h.getTask)
	tasks.DELETE("/:id", h.deleteTask)
	tasks.DELETE("", h.batchDeleteTasks)
	tasks.POST("/:id/cancel", h.cancelTask)
}

// GET /ai/usage  [auth]
func (h *Handler) getUsage(c *gin.Context) {
	response.OK(c, h.svc.Usage())
}

// POST /ai/usage/reset  [auth]
func (h *Handler) resetUsage(c *gin.Context) {
	h.svc.ResetUsage()
	response.NoContent(c)
}

// GET /ai/cache/stats  [auth]
func (h *Handler) getCacheStats(c *gin.Context) {
	response.OK(c, h.svc.CacheStats(c.Request.Context()))
}

// DELETE /ai/cache  [auth]
func (h *Handler) clearCache(c *gin.Context) {
	if err := h.svc.ClearCache(c.Request.Context()); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// GET /ai/tasks  [auth]
func (h *Handler) listTasks(c *gin.Context) {
	if h.svc.taskSvc == nil {
		response.ServiceUnavailable(c, "task queue is not configured")
		return
	}
	q := pagination.FromContext(c)

	var taskTypePtr *string
	var statusPtr *taskqueue.TaskStatus
	if t := c.Query("type"); t != "" {
		taskTypePtr = &t
	}
	if st := c.Query("status"); st != "" {
		s := taskqueue.TaskStatus(st)
		statusPtr = &s
	}

	tasks, total, err := h.svc.taskSvc.List(c.Request.Context(), q.Page, q.Size, taskTypePtr, statusPtr)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	totalPages := int((total + int64(q.Size) - 1) / int64(q.Size))
	response.Paged(c, tasks, response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPages,
		Size:        q.Size,
		HasNextPage: q.Page < totalPages,
	})
}

// GET /ai/tasks/:id  [auth]
func (h *Handler) getTask(c *gin.Context) {
	if h.svc.taskSvc == nil {
		response.ServiceUnavailable(c, "task queue is not configured")
		return
	}
	task, err := h.svc.taskSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if task == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, task)
}

// DELETE /ai/tasks/:id  [auth]
func (h *Handler) deleteTask(c *gin.Context) {
	if h.svc.taskSvc == nil {
		response.ServiceUnavailable(c, "task queue is not configured")
		return
	}
	if err := h.svc.taskSvc.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.NoContent(c)
}

// DELETE /ai/tasks?before=<unix_ms>  [auth]
func (h *Handler) batchDeleteTasks(c *gin.Context) {
	if h.svc.taskSvc == nil {
		response.ServiceUnavailable(c, "task queue is not configured")
		return
	}
	var before int64
	if beforeStr := c.Query("before"); beforeStr != "" {
		if v, err := strconv.ParseInt(beforeStr, 10, 64); err == nil {
			before = v
		}
	}
	if err := h.svc.taskSvc.DeleteCompleted(c.Request.Context(), before); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// POST /ai/tasks/:id/cancel  [auth]
func (h *Handler) cancelTask(c *gin.Context) {
	if h.svc.taskSvc == nil {
		response.ServiceUnavailable(c, "task queue is not configured")
		return
	}
	task, err := h.svc.taskSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if task == nil {
		response.NotFound(c)
		return
	}
	switch task.Status {
	case taskqueue.TaskCompleted, taskqueue.TaskFailed, taskqueue.TaskCancelled:
		response.BadRequest(c, "task already finished")
	case taskqueue.TaskRunning:
		if err := h.svc.taskSvc.UpdateStatus(c.Request.Context(), task.ID, taskqueue.TaskCancelled, nil, "cancelled by user"); err != nil {
			response.InternalError(c, err)
			return
		}
		response.NoContent(c)
	default:
		if err := h.svc.taskSvc.Cancel(c.Request.Context(), task.ID); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		response.NoContent(c)
	}
}
