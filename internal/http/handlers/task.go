package handlers

import (
	"net/http"
	"strconv"

	"task_manager_api/internal/domain"
	"task_manager_api/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// taskRequest is the body of create and update. Both fields must be present;
// empty strings are accepted.
type taskRequest struct {
	Title       *string `json:"title" binding:"required"`
	Description *string `json:"description" binding:"required"`
}

func (r taskRequest) toNewTask() domain.NewTask {
	return domain.NewTask{Title: *r.Title, Description: *r.Description}
}

// CreateTask handles POST /api/tasks/:user_id.
func (h *Handler) CreateTask(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	task, err := h.Store.Create(c.Request.Context(), ownerID, req.toNewTask())
	if err != nil {
		h.internalError(c, err, "failed to create task")
		return
	}

	h.Logger.Debug().
		Int64("task_id", task.ID).
		Int64("user_id", ownerID).
		Msg("created task")
	c.JSON(http.StatusCreated, task)
}

// ListTasks handles GET /api/tasks/:user_id.
func (h *Handler) ListTasks(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	tasks, err := h.Store.List(c.Request.Context(), ownerID)
	if err != nil {
		h.internalError(c, err, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// GetTask handles GET /api/tasks/:user_id/:task_id.
func (h *Handler) GetTask(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.Store.Get(c.Request.Context(), ownerID, taskID)
	if err != nil {
		h.internalError(c, err, "failed to get task")
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/:user_id/:task_id. Title and description
// are always replaced together.
func (h *Handler) UpdateTask(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	updated, err := h.Store.Update(c.Request.Context(), ownerID, taskID, req.toNewTask())
	if err != nil {
		h.internalError(c, err, "failed to update task")
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteTask handles DELETE /api/tasks/:user_id/:task_id.
func (h *Handler) DeleteTask(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.Store.Delete(c.Request.Context(), ownerID, taskID)
	if err != nil {
		h.internalError(c, err, "failed to delete task")
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ownerID(c *gin.Context) (int64, bool) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		// route registered without middleware.OwnerGuard
		h.Logger.Error().Str("route", c.FullPath()).Msg("owner id missing from context")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return 0, false
	}
	return ownerID, true
}

func taskIDParam(c *gin.Context) (int64, bool) {
	taskID, err := strconv.ParseInt(c.Param("task_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return taskID, true
}

func (h *Handler) internalError(c *gin.Context, err error, msg string) {
	h.Logger.Error().
		Err(err).
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("route", c.FullPath()).
		Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
