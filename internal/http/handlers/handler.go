package handlers

import (
	"task_manager_api/internal/http/middleware"
	"task_manager_api/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	Store  repository.TaskStore
	Logger zerolog.Logger
}

func NewHandler(store repository.TaskStore, logger zerolog.Logger) *Handler {
	return &Handler{
		Store:  store,
		Logger: logger,
	}
}

// getOwnerID returns the path owner parsed by middleware.OwnerGuard.
func getOwnerID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(middleware.OwnerIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
