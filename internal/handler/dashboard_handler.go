package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pulsevo/internal/repository"
	"pulsevo/internal/service/analytics"
)

// DashboardHandler serves the aggregate metric panels: overview, status
// distribution, trends and team rollups.
type DashboardHandler struct {
	tasks  TaskStore
	users  UserStore
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardHandler(tasks TaskStore, users UserStore, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		tasks:  tasks,
		users:  users,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// rangeFilter builds the created-date filter from query params; both bounds
// or nothing.
func rangeFilter(c *gin.Context) (repository.TaskFilter, *time.Time, *time.Time) {
	start, end := analytics.ParseRange(c.Query("start_date"), c.Query("end_date"))
	return repository.TaskFilter{StartDate: start, EndDate: end}, start, end
}

// GetOverview handles GET /api/overview: current-period counts plus deltas
// against the resolved comparison window.
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	ctx := c.Request.Context()
	filter, start, end := rangeFilter(c)

	current, err := h.tasks.List(ctx, filter)
	if err != nil {
		h.logger.Error("overview: task query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}

	now := h.now()
	prevStart, prevEnd := analytics.PreviousWindow(start, end, now)
	// 上一个窗口是半开区间 [prevStart, prevEnd)
	prevEndExclusive := prevEnd.Add(-time.Nanosecond)
	previous, err := h.tasks.List(ctx, repository.TaskFilter{
		StartDate: &prevStart,
		EndDate:   &prevEndExclusive,
	})
	if err != nil {
		h.logger.Error("overview: previous window query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}

	c.JSON(http.StatusOK, analytics.BuildOverview(current, previous, now))
}

// GetDistribution handles GET /api/distribution: the four-entry status
// breakdown used by the pie chart.
func (h *DashboardHandler) GetDistribution(c *gin.Context) {
	filter, _, _ := rangeFilter(c)

	tasks, err := h.tasks.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("distribution: task query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}

	counts := analytics.Aggregate(tasks)
	c.JSON(http.StatusOK, []gin.H{
		{"name": "Open", "value": counts.Open, "color": "#a78bfa"},
		{"name": "In Progress", "value": counts.InProgress, "color": "#60a5fa"},
		{"name": "Completed", "value": counts.Completed, "color": "#fbbf24"},
		{"name": "Blocked", "value": counts.Blocked, "color": "#ec4899"},
	})
}

// GetTrends handles GET /api/trends: the bucketed time series.
func (h *DashboardHandler) GetTrends(c *gin.Context) {
	filter, start, end := rangeFilter(c)

	tasks, err := h.tasks.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("trends: task query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}

	c.JSON(http.StatusOK, analytics.Bucketize(tasks, start, end, h.now()))
}

// GetTeams handles GET /api/teams: sorted distinct active team names.
func (h *DashboardHandler) GetTeams(c *gin.Context) {
	users, err := h.users.ListActive(c.Request.Context())
	if err != nil {
		h.logger.Error("teams: user query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}

	c.JSON(http.StatusOK, analytics.Teams(users))
}

// GetTeamPerformance handles GET /api/team-performance.
func (h *DashboardHandler) GetTeamPerformance(c *gin.Context) {
	ctx := c.Request.Context()
	filter, _, _ := rangeFilter(c)

	users, err := h.users.ListActive(ctx)
	if err != nil {
		h.logger.Error("team-performance: user query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}

	if team := c.Query("team"); team != "" && team != "all" {
		filtered := users[:0]
		for _, u := range users {
			if u.Team == team {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}

	tasks, err := h.tasks.List(ctx, filter)
	if err != nil {
		h.logger.Error("team-performance: task query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}

	c.JSON(http.StatusOK, analytics.TeamPerformance(users, tasks))
}
