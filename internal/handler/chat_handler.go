package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pulsevo/internal/service/insight"
)

// chatSnapshotLimit bounds how many recent tasks ground a chat answer.
const chatSnapshotLimit = 300

type ChatHandler struct {
	tasks    TaskStore
	users    UserStore
	narrator *insight.Narrator
	logger   *zap.Logger
	now      func() time.Time
}

func NewChatHandler(tasks TaskStore, users UserStore, narrator *insight.Narrator, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		tasks:    tasks,
		users:    users,
		narrator: narrator,
		logger:   logger,
		now:      time.Now,
	}
}

// HandleChat handles POST /api/chat: a conversational query answered from a
// snapshot of recent tasks and the full roster.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusOK, gin.H{
			"response":  "Please ask a question.",
			"timestamp": h.timestamp(),
		})
		return
	}

	ctx := c.Request.Context()

	tasks, err := h.tasks.Recent(ctx, chatSnapshotLimit)
	if err != nil {
		h.logger.Error("chat: task snapshot failed", zap.Error(err))
		h.dataUnavailable(c)
		return
	}

	users, err := h.users.List(ctx, "")
	if err != nil {
		h.logger.Error("chat: user snapshot failed", zap.Error(err))
		h.dataUnavailable(c)
		return
	}

	snapshot := insight.BuildChatSnapshot(tasks, users)
	c.JSON(http.StatusOK, gin.H{
		"response":  h.narrator.Answer(ctx, req.Query, snapshot),
		"timestamp": h.timestamp(),
	})
}

func (h *ChatHandler) dataUnavailable(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"response":  "I'm having trouble accessing the live data right now. Please try again.",
		"timestamp": h.timestamp(),
	})
}

func (h *ChatHandler) timestamp() string {
	return h.now().Format("3:04:05 PM")
}
