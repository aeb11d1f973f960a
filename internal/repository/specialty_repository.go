package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-directory/internal/domain"
)

// SpecialtyRepository defines persistence access for the specialty catalog.
// Unlike accounts and doctors, specialty reads filter on the active flag.
type SpecialtyRepository interface {
	Create(ctx context.Context, specialty *domain.Specialty) error
	GetByID(ctx context.Context, id string) (*domain.Specialty, error)
	ListAll(ctx context.Context) ([]*domain.Specialty, error)
}

type specialtyRepository struct {
	pool *pgxpool.Pool
}

// NewSpecialtyRepository returns a Postgres-backed implementation.
func NewSpecialtyRepository(pool *pgxpool.Pool) SpecialtyRepository {
	return &specialtyRepository{pool: pool}
}

func (r *specialtyRepository) Create(ctx context.Context, specialty *domain.Specialty) error {
	const query = `
        INSERT INTO specialties (id, name, description, created_at, active)
        VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		specialty.ID,
		specialty.Name,
		specialty.Description,
		specialty.CreatedAt,
		specialty.Active,
	)
	return translateError(err)
}

func (r *specialtyRepository) GetByID(ctx context.Context, id string) (*domain.Specialty, error) {
	const query = `
        SELECT id, name, description, created_at, active
        FROM specialties WHERE id=$1 AND active=TRUE`

	var specialty domain.Specialty
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&specialty.ID,
		&specialty.Name,
		&specialty.Description,
		&specialty.CreatedAt,
		&specialty.Active,
	); err != nil {
		return nil, err
	}
	return &specialty, nil
}

func (r *specialtyRepository) ListAll(ctx context.Context) ([]*domain.Specialty, error) {
	const query = `
        SELECT id, name, description, created_at, active
        FROM specialties WHERE active=TRUE ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var specialties []*domain.Specialty
	for rows.Next() {
		var specialty domain.Specialty
		if err := rows.Scan(
			&specialty.ID,
			&specialty.Name,
			&specialty.Description,
			&specialty.CreatedAt,
			&specialty.Active,
		); err != nil {
			return nil, err
		}
		specialties = append(specialties, &specialty)
	}
	return specialties, rows.Err()
}
