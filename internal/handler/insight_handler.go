package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pulsevo/internal/cache"
	"pulsevo/internal/repository"
	"pulsevo/internal/service/analytics"
	"pulsevo/internal/service/insight"
)

const (
	summaryCacheKey   = "pulsevo:ai:summary"
	dashboardCacheKey = "pulsevo:ai:dashboard"
	insightCacheTTL   = 5 * time.Minute
)

// InsightHandler serves the AI-narrated and placeholder metric panels.
type InsightHandler struct {
	tasks    TaskStore
	narrator *insight.Narrator
	panels   insight.PanelSource
	cache    *cache.Cache
	logger   *zap.Logger
	now      func() time.Time
}

func NewInsightHandler(tasks TaskStore, narrator *insight.Narrator, panels insight.PanelSource, c *cache.Cache, logger *zap.Logger) *InsightHandler {
	return &InsightHandler{
		tasks:    tasks,
		narrator: narrator,
		panels:   panels,
		cache:    c,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type summaryResponse struct {
	Summary        string  `json:"summary"`
	Completed24h   int     `json:"completed_24h"`
	AvgClosureTime float64 `json:"avg_closure_time"`
	VelocityChange float64 `json:"velocity_change"`
	BlockedTasks   int     `json:"blocked_tasks"`
}

// GetSummary handles GET /api/ai/summary. Unfiltered summaries are cached;
// narration is the slow path.
func (h *InsightHandler) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()
	filter, start, end := rangeFilter(c)
	unfiltered := start == nil && end == nil

	if unfiltered {
		var cached summaryResponse
		if h.cache.GetJSON(ctx, summaryCacheKey, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	tasks, err := h.tasks.List(ctx, filter)
	if err != nil {
		h.logger.Error("ai summary: task query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}
	if len(tasks) > 50 {
		tasks = tasks[:50] // newest 50 carry the summary context
	}

	now := h.now()
	counts := analytics.Aggregate(tasks)
	m := insight.SummaryMetrics{
		Completed24h:   analytics.CompletedSince(tasks, now.Add(-24*time.Hour)),
		AvgClosureTime: analytics.MeanClosureHours(tasks),
		Blocked:        counts.Blocked,
		Open:           counts.Open,
		InProgress:     counts.InProgress,
	}

	resp := summaryResponse{
		Summary:        h.narrator.Summarize(ctx, tasks, m),
		Completed24h:   m.Completed24h,
		AvgClosureTime: m.AvgClosureTime,
		VelocityChange: h.panels.VelocityChange(ctx),
		BlockedTasks:   m.Blocked,
	}

	if unfiltered {
		h.cache.SetJSON(ctx, summaryCacheKey, resp, insightCacheTTL)
	}
	c.JSON(http.StatusOK, resp)
}

// GetClosurePerformance handles GET /api/ai/closure-performance.
func (h *InsightHandler) GetClosurePerformance(c *gin.Context) {
	filter, _, _ := rangeFilter(c)

	tasks, err := h.tasks.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("closure performance: task query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}

	c.JSON(http.StatusOK, h.panels.ClosurePerformance(c.Request.Context(), analytics.Aggregate(tasks)))
}

// GetDueCompliance handles GET /api/ai/due-compliance.
func (h *InsightHandler) GetDueCompliance(c *gin.Context) {
	filter, _, _ := rangeFilter(c)

	tasks, err := h.tasks.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("due compliance: task query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}

	now := h.now()
	counts := analytics.Aggregate(tasks)
	c.JSON(http.StatusOK, h.panels.DueCompliance(
		c.Request.Context(),
		analytics.CountOverdue(tasks, now),
		analytics.CountOnTime(tasks),
		counts.InProgress,
	))
}

// GetPredictions handles GET /api/ai/predictions.
func (h *InsightHandler) GetPredictions(c *gin.Context) {
	c.JSON(http.StatusOK, h.panels.Predictions(c.Request.Context()))
}

// GetTeamBenchmarking handles GET /api/ai/team-benchmarking.
func (h *InsightHandler) GetTeamBenchmarking(c *gin.Context) {
	c.JSON(http.StatusOK, h.panels.TeamBenchmarking(c.Request.Context()))
}

// GetProductivityTrends handles GET /api/ai/productivity-trends.
func (h *InsightHandler) GetProductivityTrends(c *gin.Context) {
	c.JSON(http.StatusOK, h.panels.ProductivityTrends(c.Request.Context()))
}

// GetSentiment handles GET /api/ai/sentiment.
func (h *InsightHandler) GetSentiment(c *gin.Context) {
	c.JSON(http.StatusOK, h.panels.Sentiment(c.Request.Context()))
}

// GetDashboard handles GET /api/ai/dashboard: the composite panel set
// generated in one JSON-mode call, grounded in real tallies.
func (h *InsightHandler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var cached insight.Dashboard
	if h.cache.GetJSON(ctx, dashboardCacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	tasks, err := h.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		h.logger.Error("ai dashboard: task query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate dashboard"})
		return
	}

	now := h.now()
	counts := analytics.Aggregate(tasks)
	stats := insight.RealStats{
		Total:          counts.Total,
		Completed:      counts.Completed,
		InProgress:     counts.InProgress,
		Open:           counts.Open,
		Blocked:        counts.Blocked,
		Overdue:        analytics.CountOverdue(tasks, now),
		CompletionRate: counts.CompletionRate,
	}

	dashboard := h.narrator.GenerateDashboard(ctx, stats)
	h.cache.SetJSON(ctx, dashboardCacheKey, dashboard, insightCacheTTL)
	c.JSON(http.StatusOK, dashboard)
}
