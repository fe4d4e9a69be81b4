package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
)

// PropertyFilter narrows the browse listing for clients.
type PropertyFilter struct {
	City     *string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
	Offset   int
}

// PropertyRepository defines persistence access for listings.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	ListByAgent(ctx context.Context, agentID int64, limit, offset int) ([]domain.Property, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Property, error)
	ListAvailable(ctx context.Context, filter PropertyFilter) ([]domain.Property, error)
}

type propertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository returns a Postgres-backed implementation.
func NewPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool}
}

const propertyColumns = `id, agent_id, title, description, address, city, price, status, created_at, updated_at`

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	const query = `
        INSERT INTO properties (agent_id, title, description, address, city, price, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		property.AgentID,
		property.Title,
		property.Description,
		property.Address,
		property.City,
		property.Price,
		property.Status,
	).Scan(&property.ID, &property.CreatedAt, &property.UpdatedAt)
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	const query = `
        UPDATE properties
        SET title=$1, description=$2, address=$3, city=$4, price=$5, status=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		property.Title,
		property.Description,
		property.Address,
		property.City,
		property.Price,
		property.Status,
		property.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	const query = `SELECT ` + propertyColumns + ` FROM properties WHERE id=$1`

	var property domain.Property
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&property.ID,
		&property.AgentID,
		&property.Title,
		&property.Description,
		&property.Address,
		&property.City,
		&property.Price,
		&property.Status,
		&property.CreatedAt,
		&property.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) ListByAgent(ctx context.Context, agentID int64, limit, offset int) ([]domain.Property, error) {
	const query = `
        SELECT ` + propertyColumns + ` FROM properties
        WHERE agent_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, agentID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *propertyRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Property, error) {
	const query = `
        SELECT ` + propertyColumns + ` FROM properties
        ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *propertyRepository) ListAvailable(ctx context.Context, filter PropertyFilter) ([]domain.Property, error) {
	const query = `
        SELECT ` + propertyColumns + ` FROM properties
        WHERE status=$1
          AND ($2::text IS NULL OR city ILIKE $2)
          AND ($3::numeric IS NULL OR price >= $3)
          AND ($4::numeric IS NULL OR price <= $4)
        ORDER BY created_at DESC LIMIT $5 OFFSET $6`

	rows, err := r.pool.Query(ctx, query,
		domain.PropertyStatusAvailable,
		filter.City,
		filter.MinPrice,
		filter.MaxPrice,
		filter.Limit,
		filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func scanProperties(rows pgx.Rows) ([]domain.Property, error) {
	var properties []domain.Property
	for rows.Next() {
		var property domain.Property
		if err := rows.Scan(
			&property.ID,
			&property.AgentID,
			&property.Title,
			&property.Description,
			&property.Address,
			&property.City,
			&property.Price,
			&property.Status,
			&property.CreatedAt,
			&property.UpdatedAt,
		); err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}
	return properties, rows.Err()
}
