package model

import "time"

type User struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Initials  string    `json:"initials"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Team      string    `json:"team"`
	AvatarURL string    `json:"avatar_url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserStats is a user joined with their task tallies, served by /api/users.
type UserStats struct {
	User
	Assigned             int     `json:"assigned"`
	Completed            int     `json:"completed"`
	InProgress           int     `json:"in_progress"`
	Open                 int     `json:"open"`
	CompletionPercentage float64 `json:"completion_percentage"`
	Trend                float64 `json:"trend"`
}
