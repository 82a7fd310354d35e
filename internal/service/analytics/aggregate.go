package analytics

import (
	"math"
	"sort"
	"time"

	"pulsevo/internal/model"
)

// StatusCounts are the point-in-time tallies every dashboard panel starts from.
type StatusCounts struct {
	Open           int     `json:"open"`
	InProgress     int     `json:"in_progress"`
	Completed      int     `json:"completed"`
	Blocked        int     `json:"blocked"`
	Total          int     `json:"total"`
	CompletionRate float64 `json:"completion_rate"`
}

// Aggregate tallies tasks by status.
func Aggregate(tasks []model.Task) StatusCounts {
	var c StatusCounts
	for i := range tasks {
		switch tasks[i].Status {
		case model.StatusOpen:
			c.Open++
		case model.StatusInProgress:
			c.InProgress++
		case model.StatusCompleted:
			c.Completed++
		case model.StatusBlocked:
			c.Blocked++
		}
	}
	c.Total = len(tasks)
	if c.Total > 0 {
		c.CompletionRate = Round1(float64(c.Completed) / float64(c.Total) * 100)
	}
	return c
}

// Change is the percentage change from previous to current, to one decimal.
// A zero baseline cannot be divided, so it reports 100 when anything at all
// happened and 0 otherwise.
func Change(current, previous int) float64 {
	if previous > 0 {
		return Round1(float64(current-previous) / float64(previous) * 100)
	}
	if current > 0 {
		return 100
	}
	return 0
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// CompletedOn counts tasks completed on the given calendar day.
func CompletedOn(tasks []model.Task, d time.Time) int {
	n := 0
	target := day(d)
	for i := range tasks {
		t := &tasks[i]
		if t.Status == model.StatusCompleted && t.CompletedDate != nil &&
			day(*t.CompletedDate).Equal(target) {
			n++
		}
	}
	return n
}

// CompletedSince counts tasks completed at or after the given instant.
func CompletedSince(tasks []model.Task, since time.Time) int {
	n := 0
	for i := range tasks {
		t := &tasks[i]
		if t.Status == model.StatusCompleted && t.CompletedDate != nil &&
			!t.CompletedDate.Before(since) {
			n++
		}
	}
	return n
}

// MeanClosureHours averages created-to-completed spans over completed tasks.
// Tasks missing either timestamp are skipped rather than failing the batch.
func MeanClosureHours(tasks []model.Task) float64 {
	var sum float64
	var n int
	for i := range tasks {
		t := &tasks[i]
		if t.Status != model.StatusCompleted {
			continue
		}
		if hours, ok := t.ClosureHours(); ok && hours >= 0 {
			sum += hours
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return Round1(sum / float64(n))
}

// CountOverdue counts non-completed tasks past their due date.
func CountOverdue(tasks []model.Task, now time.Time) int {
	n := 0
	for i := range tasks {
		if tasks[i].IsOverdue(now) {
			n++
		}
	}
	return n
}

// CountOnTime counts completed tasks that met their due date.
func CountOnTime(tasks []model.Task) int {
	n := 0
	for i := range tasks {
		t := &tasks[i]
		if t.Status == model.StatusCompleted && t.DueDate != nil && t.CompletedDate != nil &&
			!t.CompletedDate.After(*t.DueDate) {
			n++
		}
	}
	return n
}

// TeamStat is one row of the team-performance panel.
type TeamStat struct {
	Name       string `json:"name"`
	Completed  int    `json:"completed"`
	InProgress int    `json:"in_progress"`
	Open       int    `json:"open"`
}

// TeamPerformance groups task tallies by the team of the assigned user.
// Only the supplied (active) users contribute; unassigned tasks and tasks
// assigned to anyone outside that set are left out of the rollup. Rows are
// sorted by total task count, busiest team first.
func TeamPerformance(users []model.User, tasks []model.Task) []TeamStat {
	byAssignee := map[string]StatusCounts{}
	for i := range tasks {
		t := &tasks[i]
		if t.AssignedTo == nil {
			continue
		}
		c := byAssignee[*t.AssignedTo]
		switch t.Status {
		case model.StatusCompleted:
			c.Completed++
		case model.StatusInProgress:
			c.InProgress++
		case model.StatusOpen:
			c.Open++
		}
		byAssignee[*t.AssignedTo] = c
	}

	stats := map[string]*TeamStat{}
	order := []string{}
	for i := range users {
		u := &users[i]
		team := u.Team
		if team == "" {
			team = "Unassigned"
		}
		s, ok := stats[team]
		if !ok {
			s = &TeamStat{Name: team}
			stats[team] = s
			order = append(order, team)
		}
		c := byAssignee[u.UserID]
		s.Completed += c.Completed
		s.InProgress += c.InProgress
		s.Open += c.Open
	}

	result := make([]TeamStat, 0, len(order))
	for _, team := range order {
		result = append(result, *stats[team])
	}
	sort.SliceStable(result, func(i, j int) bool {
		ti := result[i].Completed + result[i].InProgress + result[i].Open
		tj := result[j].Completed + result[j].InProgress + result[j].Open
		return ti > tj
	})
	return result
}

// Teams returns the sorted distinct team names among the supplied users.
func Teams(users []model.User) []string {
	seen := map[string]bool{}
	teams := []string{}
	for i := range users {
		team := users[i].Team
		if team == "" || seen[team] {
			continue
		}
		seen[team] = true
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// PerUserStats joins each user with tallies over their assigned tasks.
func PerUserStats(users []model.User, tasks []model.Task) []model.UserStats {
	result := make([]model.UserStats, 0, len(users))
	for i := range users {
		u := users[i]
		var assigned, completed, inProgress, open int
		for j := range tasks {
			t := &tasks[j]
			if t.AssignedTo == nil || *t.AssignedTo != u.UserID {
				continue
			}
			assigned++
			switch t.Status {
			case model.StatusCompleted:
				completed++
			case model.StatusInProgress:
				inProgress++
			case model.StatusOpen:
				open++
			}
		}
		var pct float64
		if assigned > 0 {
			pct = Round1(float64(completed) / float64(assigned) * 100)
		}
		result = append(result, model.UserStats{
			User:                 u,
			Assigned:             assigned,
			Completed:            completed,
			InProgress:           inProgress,
			Open:                 open,
			CompletionPercentage: pct,
			Trend:                pct,
		})
	}
	return result
}

// ProjectStat is one row of /api/projects/stats.
type ProjectStat struct {
	Project string `json:"project"`
	Total   int    `json:"total"`
	Open    int    `json:"open"`
}

// ProjectStats tallies tasks per project, sorted by project name.
func ProjectStats(tasks []model.Task) []ProjectStat {
	byProject := map[string]*ProjectStat{}
	names := []string{}
	for i := range tasks {
		t := &tasks[i]
		if t.Project == "" {
			continue
		}
		s, ok := byProject[t.Project]
		if !ok {
			s = &ProjectStat{Project: t.Project}
			byProject[t.Project] = s
			names = append(names, t.Project)
		}
		s.Total++
		if t.Status == model.StatusOpen {
			s.Open++
		}
	}
	sort.Strings(names)
	result := make([]ProjectStat, 0, len(names))
	for _, name := range names {
		result = append(result, *byProject[name])
	}
	return result
}
