package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/visitor-service/internal/domain"
)

// PassRepository manages visitor-pass persistence. Passes are
// insert-only; there is no update path.
type PassRepository interface {
	Create(ctx context.Context, pass *domain.VisitorPass) error
	GetByID(ctx context.Context, id string) (*domain.VisitorPass, error)
	GetLatestByVisitor(ctx context.Context, visitorID string) (*domain.VisitorPass, error)
}

type passRepository struct {
	pool *pgxpool.Pool
}

// NewPassRepository constructs repository.
func NewPassRepository(pool *pgxpool.Pool) PassRepository {
	return &passRepository{pool: pool}
}

func (r *passRepository) Create(ctx context.Context, pass *domain.VisitorPass) error {
	const query = `
        INSERT INTO visitor_passes (visitor_id, issued_by, valid_until)
        VALUES ($1,$2,$3)
        RETURNING id, issued_at`

	return r.pool.QueryRow(ctx, query,
		pass.VisitorID,
		pass.IssuedBy,
		pass.ValidUntil,
	).Scan(&pass.ID, &pass.IssuedAt)
}

func (r *passRepository) GetByID(ctx context.Context, id string) (*domain.VisitorPass, error) {
	const query = `
        SELECT id, visitor_id, issued_by, valid_until, issued_at
        FROM visitor_passes WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *passRepository) GetLatestByVisitor(ctx context.Context, visitorID string) (*domain.VisitorPass, error) {
	const query = `
        SELECT id, visitor_id, issued_by, valid_until, issued_at
        FROM visitor_passes WHERE visitor_id=$1
        ORDER BY issued_at DESC LIMIT 1`
	return r.scanOne(ctx, query, visitorID)
}

func (r *passRepository) scanOne(ctx context.Context, query string, arg any) (*domain.VisitorPass, error) {
	var pass domain.VisitorPass
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&pass.ID,
		&pass.VisitorID,
		&pass.IssuedBy,
		&pass.ValidUntil,
		&pass.IssuedAt,
	); err != nil {
		return nil, err
	}
	return &pass, nil
}
