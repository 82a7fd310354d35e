package model

import "time"

// Task status values. The dashboard never mutates these; they are written by
// the upstream tracker and read here for reporting.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusBlocked    = "Blocked"
)

// Task priority values.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

type Task struct {
	TaskID         string     `json:"task_id"`
	TaskName       string     `json:"task_name"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	Project        string     `json:"project"`
	AssignedTo     *string    `json:"assigned_to"`
	CreatedDate    time.Time  `json:"created_date"`
	StartDate      *time.Time `json:"start_date"`
	CompletedDate  *time.Time `json:"completed_date"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours float64    `json:"estimated_hours"`
	Tags           string     `json:"tags"`
	BlockedReason  string     `json:"blocked_reason"`
	Comments       string     `json:"comments"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// IsOverdue reports whether the task has passed its due date without being
// completed. Completed tasks are never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.Status != StatusCompleted && t.DueDate.Before(now)
}

// ClosureHours returns the created-to-completed span in hours, or false when
// either timestamp is missing.
func (t *Task) ClosureHours() (float64, bool) {
	if t.CompletedDate == nil || t.CreatedDate.IsZero() {
		return 0, false
	}
	return t.CompletedDate.Sub(t.CreatedDate).Hours(), true
}
