package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/visitor-service/internal/domain"
)

// ResidentRepository handles persistence for resident unit records.
type ResidentRepository interface {
	Create(ctx context.Context, resident *domain.Resident) error
	GetByName(ctx context.Context, name string) (*domain.Resident, error)
	DeleteByName(ctx context.Context, name string) error
}

type residentRepository struct {
	pool *pgxpool.Pool
}

// NewResidentRepository instantiates the repository.
func NewResidentRepository(pool *pgxpool.Pool) ResidentRepository {
	return &residentRepository{pool: pool}
}

func (r *residentRepository) Create(ctx context.Context, resident *domain.Resident) error {
	const query = `
        INSERT INTO residents (name, building, apartment, phone)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		resident.Name,
		resident.Building,
		resident.Apartment,
		resident.Phone,
	).Scan(&resident.ID, &resident.CreatedAt)
}

func (r *residentRepository) GetByName(ctx context.Context, name string) (*domain.Resident, error) {
	const query = `
        SELECT id, name, building, apartment, phone, created_at
        FROM residents WHERE name=$1`

	var resident domain.Resident
	if err := r.pool.QueryRow(ctx, query, name).Scan(
		&resident.ID,
		&resident.Name,
		&resident.Building,
		&resident.Apartment,
		&resident.Phone,
		&resident.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &resident, nil
}

func (r *residentRepository) DeleteByName(ctx context.Context, name string) error {
	const query = `DELETE FROM residents WHERE name=$1`

	cmd, err := r.pool.Exec(ctx, query, name)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
