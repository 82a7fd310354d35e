package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"pulsevo/internal/repository"
	"pulsevo/internal/service/analytics"
)

type UserHandler struct {
	users  UserStore
	tasks  TaskStore
	logger *zap.Logger
}

func NewUserHandler(users UserStore, tasks TaskStore, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, tasks: tasks, logger: logger}
}

// GetUsers handles GET /api/users: roster joined with per-user task stats.
func (h *UserHandler) GetUsers(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.users.List(ctx, c.Query("search"))
	if err != nil {
		h.logger.Error("user list query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}

	tasks, err := h.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		h.logger.Error("user stats task query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}

	c.JSON(http.StatusOK, analytics.PerUserStats(users, tasks))
}

// GetUser handles GET /api/users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("user query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, user)
}
