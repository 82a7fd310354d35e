package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pulsevo/internal/model"
	"pulsevo/pkg/metrics"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	user_id, name, initials, email, role, team, avatar_url,
	is_active, created_at, updated_at
`

// List returns users, optionally narrowed by a name substring.
func (r *UserRepository) List(ctx context.Context, search string) ([]model.User, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("list", "users", time.Since(start)) }()

	query := "SELECT " + userColumns + " FROM users"
	args := []interface{}{}
	if search != "" {
		query += " WHERE name ILIKE $1"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

// ListActive returns active users only; team rollups are built from these.
func (r *UserRepository) ListActive(ctx context.Context) ([]model.User, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("list_active", "users", time.Since(start)) }()

	rows, err := r.db.Query(ctx,
		"SELECT "+userColumns+" FROM users WHERE is_active ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

// GetByID returns a single user. pgx.ErrNoRows is passed through so handlers
// can map it to 404.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("get", "users", time.Since(start)) }()

	row := r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE user_id = $1", userID)
	u, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.UserID,
		&u.Name,
		&u.Initials,
		&u.Email,
		&u.Role,
		&u.Team,
		&u.AvatarURL,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUsers(rows pgx.Rows) ([]model.User, error) {
	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
