package insight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pulsevo/internal/model"
)

func strptr(s string) *string { return &s }

func TestSummarizeFallsBackWithoutClient(t *testing.T) {
	n := NewNarrator(nil, zap.NewNop())

	text := n.Summarize(context.Background(), nil, SummaryMetrics{
		Completed24h:   12,
		AvgClosureTime: 31.4,
		Blocked:        3,
		Open:           40,
		InProgress:     15,
	})

	assert.Contains(t, text, "12 tasks")
	assert.Contains(t, text, "31.4 hours")
	assert.Contains(t, text, "3 blocked tasks")
	assert.Contains(t, text, "40 open tasks")
}

func TestAnswerFallsBackWithoutClient(t *testing.T) {
	n := NewNarrator(nil, zap.NewNop())

	snap := BuildChatSnapshot([]model.Task{
		{TaskID: "TASK-0001", Status: model.StatusCompleted},
		{TaskID: "TASK-0002", Status: model.StatusOpen},
		{TaskID: "TASK-0003", Status: model.StatusBlocked},
	}, nil)

	text := n.Answer(context.Background(), "how are we doing?", snap)

	assert.Contains(t, text, "3 total tasks")
	assert.Contains(t, text, "1 completed")
	assert.Contains(t, text, "1 blocked")
}

func TestBuildChatSnapshot(t *testing.T) {
	tasks := []model.Task{
		{TaskID: "TASK-0001", Status: model.StatusCompleted, Project: "Web Platform", AssignedTo: strptr("USER-001")},
		{TaskID: "TASK-0002", Status: model.StatusOpen, Project: "Web Platform", AssignedTo: strptr("USER-001")},
		{TaskID: "TASK-0003", Status: model.StatusInProgress, Project: "API Services"},
		{TaskID: "TASK-0004", Status: model.StatusOpen},
	}
	users := []model.User{{UserID: "USER-001", Name: "Alice"}}

	snap := BuildChatSnapshot(tasks, users)

	assert.Equal(t, 4, snap.SummaryStats.Total)
	assert.Equal(t, 1, snap.SummaryStats.Completed)
	assert.Equal(t, 2, snap.SummaryStats.Open)

	require.Contains(t, snap.ProjectsBreakdown, "Web Platform")
	assert.Equal(t, 2, snap.ProjectsBreakdown["Web Platform"].Total)
	// Tasks without a project still count, under "Unknown".
	require.Contains(t, snap.ProjectsBreakdown, "Unknown")
	assert.Equal(t, 1, snap.ProjectsBreakdown["Unknown"].Total)

	require.Contains(t, snap.AssigneesBreakdown, "USER-001")
	assert.Equal(t, 2, snap.AssigneesBreakdown["USER-001"].Total)
	assert.Len(t, snap.AssigneesBreakdown, 1)

	assert.Len(t, snap.TeamMembers, 1)
}

func TestGenerateDashboardFallsBackWithoutClient(t *testing.T) {
	n := NewNarrator(nil, zap.NewNop())

	d := n.GenerateDashboard(context.Background(), RealStats{
		Total:          100,
		Completed:      60,
		InProgress:     20,
		Open:           15,
		Blocked:        5,
		Overdue:        8,
		CompletionRate: 60.0,
	})

	assert.Contains(t, d.Summary.Summary, "60 out of 100 tasks")
	assert.Equal(t, 5, d.Summary.BlockedTasks)
	assert.Equal(t, 5.0, d.Closure.BlockedPercentage)
	assert.Equal(t, 8, d.Compliance.Overdue)
	assert.Equal(t, 52, d.Compliance.OnTime)
	assert.Equal(t, 20, d.Compliance.ActiveTasks)
	assert.Equal(t, "Low", d.Predictions.RiskLevel)
	assert.Equal(t, "Medium", d.Predictions.NextWeekWorkload)
	require.Len(t, d.Benchmarking.Teams, 4)
	assert.Equal(t, "Your Team", d.Benchmarking.Teams[1].Name)
	assert.Equal(t, 100, d.Benchmarking.Teams[1].TotalTasks)
}

func TestFallbackDashboardRiskLevels(t *testing.T) {
	assert.Equal(t, "Medium", FallbackDashboard(RealStats{Total: 10, Blocked: 6}).Predictions.RiskLevel)
	assert.Equal(t, "High", FallbackDashboard(RealStats{Total: 20, Blocked: 11}).Predictions.RiskLevel)
}

func TestFallbackDashboardSprintBounds(t *testing.T) {
	assert.Equal(t, 70, FallbackDashboard(RealStats{Total: 10, CompletionRate: 10}).Predictions.SprintCompletion)
	assert.Equal(t, 95, FallbackDashboard(RealStats{Total: 10, CompletionRate: 99}).Predictions.SprintCompletion)
	assert.Equal(t, 80, FallbackDashboard(RealStats{Total: 10, CompletionRate: 80}).Predictions.SprintCompletion)
}
