package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LoginActivity is an audit record of a session lifecycle event.
type LoginActivity struct {
	ID        int64
	UserID    int64
	Email     string
	Action    string
	Role      string
	CreatedAt time.Time
}

// LoginActivityRepository persists session audit records.
type LoginActivityRepository interface {
	Insert(ctx context.Context, activity *LoginActivity) error
	ListRecent(ctx context.Context, limit, offset int) ([]LoginActivity, error)
}

type loginActivityRepository struct {
	pool *pgxpool.Pool
}

// NewLoginActivityRepository constructs repository.
func NewLoginActivityRepository(pool *pgxpool.Pool) LoginActivityRepository {
	return &loginActivityRepository{pool: pool}
}

func (r *loginActivityRepository) Insert(ctx context.Context, activity *LoginActivity) error {
	const query = `
        INSERT INTO login_activity (user_id, email, action, role)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		activity.UserID,
		activity.Email,
		activity.Action,
		activity.Role,
	).Scan(&activity.ID, &activity.CreatedAt)
}

func (r *loginActivityRepository) ListRecent(ctx context.Context, limit, offset int) ([]LoginActivity, error) {
	const query = `
        SELECT id, user_id, email, action, role, created_at
        FROM login_activity ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []LoginActivity
	for rows.Next() {
		var activity LoginActivity
		if err := rows.Scan(
			&activity.ID,
			&activity.UserID,
			&activity.Email,
			&activity.Action,
			&activity.Role,
			&activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}
