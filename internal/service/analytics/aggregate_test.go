package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsevo/internal/model"
)

func TestAggregateStatusSumEqualsTotal(t *testing.T) {
	tasks := []model.Task{
		task(model.StatusOpen, date(2024, 1, 1)),
		task(model.StatusOpen, date(2024, 1, 2)),
		task(model.StatusInProgress, date(2024, 1, 3)),
		task(model.StatusCompleted, date(2024, 1, 4)),
		task(model.StatusBlocked, date(2024, 1, 5)),
	}

	c := Aggregate(tasks)

	assert.Equal(t, c.Total, c.Open+c.InProgress+c.Completed+c.Blocked)
	assert.Equal(t, 5, c.Total)
	assert.Equal(t, 20.0, c.CompletionRate)
}

func TestAggregateEmpty(t *testing.T) {
	c := Aggregate(nil)

	assert.Zero(t, c.Total)
	assert.Zero(t, c.CompletionRate)
}

func TestAggregateCompletionRateBounds(t *testing.T) {
	allDone := []model.Task{
		task(model.StatusCompleted, date(2024, 1, 1)),
		task(model.StatusCompleted, date(2024, 1, 2)),
	}
	assert.Equal(t, 100.0, Aggregate(allDone).CompletionRate)

	noneDone := []model.Task{task(model.StatusOpen, date(2024, 1, 1))}
	assert.Equal(t, 0.0, Aggregate(noneDone).CompletionRate)
}

func TestChange(t *testing.T) {
	assert.Equal(t, 0.0, Change(0, 0))
	assert.Equal(t, 100.0, Change(5, 0))
	assert.Equal(t, 50.0, Change(15, 10))
	assert.Equal(t, -50.0, Change(5, 10))
	assert.Equal(t, 33.3, Change(4, 3))
}

func TestMeanClosureHoursSkipsIncompleteRecords(t *testing.T) {
	done := task(model.StatusCompleted, date(2024, 1, 1))
	done.CompletedDate = ptr(date(2024, 1, 1).Add(10 * time.Hour))

	noTimestamp := task(model.StatusCompleted, date(2024, 1, 2))

	open := task(model.StatusOpen, date(2024, 1, 3))

	assert.Equal(t, 10.0, MeanClosureHours([]model.Task{done, noTimestamp, open}))
	assert.Equal(t, 0.0, MeanClosureHours([]model.Task{noTimestamp, open}))
}

func TestCountOverdue(t *testing.T) {
	now := date(2024, 3, 15)

	overdue := task(model.StatusOpen, date(2024, 3, 1))
	overdue.DueDate = ptr(date(2024, 3, 10))

	completedLate := task(model.StatusCompleted, date(2024, 3, 1))
	completedLate.DueDate = ptr(date(2024, 3, 10))
	completedLate.CompletedDate = ptr(date(2024, 3, 12))

	notDue := task(model.StatusOpen, date(2024, 3, 1))
	notDue.DueDate = ptr(date(2024, 3, 20))

	tasks := []model.Task{overdue, completedLate, notDue}

	// Completed tasks are never overdue regardless of their due date.
	assert.Equal(t, 1, CountOverdue(tasks, now))
}

func TestCountOnTime(t *testing.T) {
	onTime := task(model.StatusCompleted, date(2024, 3, 1))
	onTime.DueDate = ptr(date(2024, 3, 10))
	onTime.CompletedDate = ptr(date(2024, 3, 9))

	late := task(model.StatusCompleted, date(2024, 3, 1))
	late.DueDate = ptr(date(2024, 3, 10))
	late.CompletedDate = ptr(date(2024, 3, 12))

	assert.Equal(t, 1, CountOnTime([]model.Task{onTime, late}))
}

func assignedTask(status, userID string) model.Task {
	t := task(status, date(2024, 1, 1))
	t.AssignedTo = &userID
	return t
}

func TestTeamPerformance(t *testing.T) {
	users := []model.User{
		{UserID: "USER-001", Team: "Alpha"},
		{UserID: "USER-002", Team: "Alpha"},
		{UserID: "USER-003", Team: "Beta"},
	}

	tasks := []model.Task{
		assignedTask(model.StatusCompleted, "USER-001"),
		assignedTask(model.StatusOpen, "USER-001"),
		assignedTask(model.StatusInProgress, "USER-002"),
		assignedTask(model.StatusCompleted, "USER-003"),
		assignedTask(model.StatusCompleted, "USER-999"), // not in the roster
		task(model.StatusOpen, date(2024, 1, 1)),        // unassigned
	}

	stats := TeamPerformance(users, tasks)

	require.Len(t, stats, 2)
	// Alpha has three tasks, Beta one: busiest team first.
	assert.Equal(t, "Alpha", stats[0].Name)
	assert.Equal(t, 1, stats[0].Completed)
	assert.Equal(t, 1, stats[0].InProgress)
	assert.Equal(t, 1, stats[0].Open)
	assert.Equal(t, "Beta", stats[1].Name)
	assert.Equal(t, 1, stats[1].Completed)
}

func TestTeams(t *testing.T) {
	users := []model.User{
		{UserID: "1", Team: "Gamma"},
		{UserID: "2", Team: "Alpha"},
		{UserID: "3", Team: "Gamma"},
		{UserID: "4", Team: ""},
	}

	assert.Equal(t, []string{"Alpha", "Gamma"}, Teams(users))
}

func TestPerUserStats(t *testing.T) {
	users := []model.User{{UserID: "USER-001", Name: "Alice"}}
	tasks := []model.Task{
		assignedTask(model.StatusCompleted, "USER-001"),
		assignedTask(model.StatusCompleted, "USER-001"),
		assignedTask(model.StatusOpen, "USER-001"),
		assignedTask(model.StatusOpen, "USER-002"),
	}

	stats := PerUserStats(users, tasks)

	require.Len(t, stats, 1)
	assert.Equal(t, 3, stats[0].Assigned)
	assert.Equal(t, 2, stats[0].Completed)
	assert.Equal(t, 1, stats[0].Open)
	assert.InDelta(t, 66.7, stats[0].CompletionPercentage, 0.001)
}

func TestProjectStats(t *testing.T) {
	mk := func(status, project string) model.Task {
		tk := task(status, date(2024, 1, 1))
		tk.Project = project
		return tk
	}

	tasks := []model.Task{
		mk(model.StatusOpen, "Web Platform"),
		mk(model.StatusCompleted, "Web Platform"),
		mk(model.StatusOpen, "API Services"),
		mk(model.StatusOpen, ""),
	}

	stats := ProjectStats(tasks)

	require.Len(t, stats, 2)
	assert.Equal(t, "API Services", stats[0].Project)
	assert.Equal(t, 1, stats[0].Total)
	assert.Equal(t, "Web Platform", stats[1].Project)
	assert.Equal(t, 2, stats[1].Total)
	assert.Equal(t, 1, stats[1].Open)
}

func TestBuildOverview(t *testing.T) {
	now := date(2024, 3, 15).Add(12 * time.Hour)

	doneToday := task(model.StatusCompleted, date(2024, 3, 14))
	doneToday.CompletedDate = ptr(now.Add(-30 * time.Minute))

	current := []model.Task{
		doneToday,
		task(model.StatusOpen, date(2024, 3, 14)),
		task(model.StatusOpen, date(2024, 3, 14)),
	}
	previous := []model.Task{
		task(model.StatusOpen, date(2024, 2, 14)),
	}

	o := BuildOverview(current, previous, now)

	assert.Equal(t, 2, o.OpenTasks)
	assert.Equal(t, 100.0, o.OpenChange)
	assert.Equal(t, 1, o.CompletedToday)
	assert.Equal(t, 100.0, o.TodayChange)
	assert.Equal(t, 1, o.CompletedThisHour)
	assert.Equal(t, 3, o.TotalTasks)
	assert.InDelta(t, 33.3, o.CompletionRate, 0.001)
}
