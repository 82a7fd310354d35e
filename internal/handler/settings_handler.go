package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pulsevo/internal/cache"
)

type SettingsHandler struct {
	cache  *cache.Cache
	logger *zap.Logger
}

func NewSettingsHandler(c *cache.Cache, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{cache: c, logger: logger}
}

// Health handles GET /api/health. No auth: load balancers hit this.
func (h *SettingsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  "postgres",
	})
}

// GetSettings handles GET /api/settings.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.cache.LoadSettings(c.Request.Context()))
}

// SaveSettings handles POST /api/settings.
func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	var s cache.Settings
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	h.cache.SaveSettings(c.Request.Context(), s)
	c.JSON(http.StatusOK, gin.H{"message": "Settings saved successfully"})
}
