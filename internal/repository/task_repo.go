package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pulsevo/internal/model"
	"pulsevo/pkg/metrics"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// TaskFilter narrows List. Zero values mean "no constraint"; StartDate and
// EndDate only apply when both are set, matching the API contract.
type TaskFilter struct {
	Status     string
	Project    string
	AssignedTo string
	Priority   string
	Search     string
	StartDate  *time.Time
	EndDate    *time.Time
}

const taskColumns = `
	task_id, task_name, description, status, priority, project, assigned_to,
	created_date, start_date, completed_date, due_date,
	estimated_hours, tags, blocked_reason, comments, updated_at
`

// List returns tasks matching the filter, newest first.
func (r *TaskRepository) List(ctx context.Context, f TaskFilter) ([]model.Task, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("list", "tasks", time.Since(start)) }()

	conds := []string{}
	args := []interface{}{}

	addCond := func(expr string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if f.Status != "" && f.Status != "All Tasks" {
		addCond("status = $%d", f.Status)
	}
	if f.Project != "" {
		addCond("project = $%d", f.Project)
	}
	if f.AssignedTo != "" {
		addCond("assigned_to = $%d", f.AssignedTo)
	}
	if f.Priority != "" {
		addCond("priority = $%d", f.Priority)
	}
	if f.Search != "" {
		addCond("task_name ILIKE $%d", "%"+f.Search+"%")
	}
	if f.StartDate != nil && f.EndDate != nil {
		addCond("created_date >= $%d", *f.StartDate)
		addCond("created_date <= $%d", *f.EndDate)
	}

	query := "SELECT " + taskColumns + " FROM tasks"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_date DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// Recent returns the newest tasks up to limit, used to snapshot context for
// the chat and summary prompts.
func (r *TaskRepository) Recent(ctx context.Context, limit int) ([]model.Task, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("recent", "tasks", time.Since(start)) }()

	query := "SELECT " + taskColumns + " FROM tasks ORDER BY created_date DESC LIMIT $1"

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// GetByID returns a single task. pgx.ErrNoRows is passed through so handlers
// can map it to 404.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*model.Task, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("get", "tasks", time.Since(start)) }()

	query := "SELECT " + taskColumns + " FROM tasks WHERE task_id = $1"

	row := r.db.QueryRow(ctx, query, taskID)
	t, err := scanTask(row)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Projects returns distinct non-empty project names.
func (r *TaskRepository) Projects(ctx context.Context) ([]string, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("projects", "tasks", time.Since(start)) }()

	rows, err := r.db.Query(ctx,
		"SELECT DISTINCT project FROM tasks WHERE project <> '' ORDER BY project")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func scanTask(row pgx.Row) (*model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.TaskID,
		&t.TaskName,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.Project,
		&t.AssignedTo,
		&t.CreatedDate,
		&t.StartDate,
		&t.CompletedDate,
		&t.DueDate,
		&t.EstimatedHours,
		&t.Tags,
		&t.BlockedReason,
		&t.Comments,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTasks(rows pgx.Rows) ([]model.Task, error) {
	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}
