package analytics

import (
	"time"

	"pulsevo/internal/model"
)

// Overview is the headline panel: current-period counts plus deltas against
// the comparison window.
type Overview struct {
	OpenTasks        int     `json:"open_tasks"`
	OpenChange       float64 `json:"open_change"`
	InProgress       int     `json:"in_progress"`
	ProgressChange   float64 `json:"progress_change"`
	CompletedToday   int     `json:"completed_today"`
	TodayChange      float64 `json:"today_change"`
	CompletedThisHour int    `json:"completed_this_hour"`
	HourChange       float64 `json:"hour_change"`
	CompletionRate   float64 `json:"completion_rate"`
	RateChange       float64 `json:"rate_change"`
	BlockedTasks     int     `json:"blocked_tasks"`
	TotalTasks       int     `json:"total_tasks"`
	CompletedTasks   int     `json:"completed_tasks"`
}

// BuildOverview compares the current task set against the previous window's.
// The rate delta is a difference of percentages, not a percentage change.
func BuildOverview(current, previous []model.Task, now time.Time) Overview {
	cur := Aggregate(current)
	prev := Aggregate(previous)

	return Overview{
		OpenTasks:         cur.Open,
		OpenChange:        Change(cur.Open, prev.Open),
		InProgress:        cur.InProgress,
		ProgressChange:    Change(cur.InProgress, prev.InProgress),
		CompletedToday:    CompletedOn(current, now),
		TodayChange:       Change(CompletedOn(current, now), CompletedOn(previous, now)),
		CompletedThisHour: CompletedSince(current, now.Add(-time.Hour)),
		HourChange:        0,
		CompletionRate:    cur.CompletionRate,
		RateChange:        Round1(cur.CompletionRate - prev.CompletionRate),
		BlockedTasks:      cur.Blocked,
		TotalTasks:        cur.Total,
		CompletedTasks:    cur.Completed,
	}
}
