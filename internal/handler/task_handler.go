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

type TaskHandler struct {
	tasks  TaskStore
	logger *zap.Logger
}

func NewTaskHandler(tasks TaskStore, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

// GetTasks handles GET /api/tasks with optional filters.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	start, end := analytics.ParseRange(c.Query("start_date"), c.Query("end_date"))
	filter := repository.TaskFilter{
		Status:     c.Query("status"),
		Project:    c.Query("project"),
		AssignedTo: c.Query("assigned_to"),
		Priority:   c.Query("priority"),
		Search:     c.Query("search"),
		StartDate:  start,
		EndDate:    end,
	}

	tasks, err := h.tasks.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("task list query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTask handles GET /api/tasks/:id.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.tasks.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		h.logger.Error("task query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// GetProjects handles GET /api/projects: distinct project names.
func (h *TaskHandler) GetProjects(c *gin.Context) {
	projects, err := h.tasks.Projects(c.Request.Context())
	if err != nil {
		h.logger.Error("projects query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load projects"})
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProjectStats handles GET /api/projects/stats: per-project tallies.
func (h *TaskHandler) GetProjectStats(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), repository.TaskFilter{})
	if err != nil {
		h.logger.Error("project stats query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}

	c.JSON(http.StatusOK, analytics.ProjectStats(tasks))
}
