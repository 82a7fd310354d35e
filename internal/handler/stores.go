package handler

import (
	"context"

	"pulsevo/internal/model"
	"pulsevo/internal/repository"
)

// TaskStore and UserStore are the read surfaces handlers depend on. They are
// satisfied by the pgx repositories in production and by in-memory fakes in
// tests; the store handle is injected, never a package-level global.

type TaskStore interface {
	List(ctx context.Context, f repository.TaskFilter) ([]model.Task, error)
	Recent(ctx context.Context, limit int) ([]model.Task, error)
	GetByID(ctx context.Context, taskID string) (*model.Task, error)
	Projects(ctx context.Context) ([]string, error)
}

type UserStore interface {
	List(ctx context.Context, search string) ([]model.User, error)
	ListActive(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
}
