package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/visitor-service/internal/domain"
)

// VisitorRepository encapsulates visitor persistence.
type VisitorRepository interface {
	Create(ctx context.Context, visitor *domain.Visitor) error
	GetByAccessPass(ctx context.Context, accessPass string) (*domain.Visitor, error)
	GetByContact(ctx context.Context, contact string) (*domain.Visitor, error)
	ListAll(ctx context.Context) ([]domain.Visitor, error)
	ListByHost(ctx context.Context, hostName string) ([]domain.Visitor, error)
	ListByContact(ctx context.Context, contact string) ([]domain.Visitor, error)
	UpdateContact(ctx context.Context, contact, newContact string) error
	SetEntryTime(ctx context.Context, accessPass string, at time.Time) error
	SetCheckoutTime(ctx context.Context, accessPass string, at time.Time) error
	Delete(ctx context.Context, accessPass string) error
}

const visitorColumns = `
        id, access_pass, name, contact, gender, building, apartment, whom_to_visit,
        entry_time, checkout_time, age, address, zipcode, relation, created_at, updated_at`

type visitorRepository struct {
	pool *pgxpool.Pool
}

// NewVisitorRepository instantiates the repository.
func NewVisitorRepository(pool *pgxpool.Pool) VisitorRepository {
	return &visitorRepository{pool: pool}
}

// Create inserts the visitor. ErrDuplicate is returned when the
// generated access pass collides with an existing one so the caller
// can regenerate and retry.
func (r *visitorRepository) Create(ctx context.Context, visitor *domain.Visitor) error {
	const query = `
        INSERT INTO visitors (access_pass, name, contact, gender, building, apartment,
                              whom_to_visit, age, address, zipcode, relation)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		visitor.AccessPass,
		visitor.Name,
		visitor.Contact,
		visitor.Gender,
		visitor.Building,
		visitor.Apartment,
		visitor.WhomToVisit,
		visitor.Age,
		visitor.Address,
		visitor.Zipcode,
		visitor.Relation,
	).Scan(&visitor.ID, &visitor.CreatedAt, &visitor.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *visitorRepository) GetByAccessPass(ctx context.Context, accessPass string) (*domain.Visitor, error) {
	query := `SELECT` + visitorColumns + ` FROM visitors WHERE access_pass=$1`
	return r.scanOne(ctx, query, accessPass)
}

func (r *visitorRepository) GetByContact(ctx context.Context, contact string) (*domain.Visitor, error) {
	query := `SELECT` + visitorColumns + ` FROM visitors WHERE contact=$1 ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(ctx, query, contact)
}

func (r *visitorRepository) ListAll(ctx context.Context) ([]domain.Visitor, error) {
	query := `SELECT` + visitorColumns + ` FROM visitors ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *visitorRepository) ListByHost(ctx context.Context, hostName string) ([]domain.Visitor, error) {
	query := `SELECT` + visitorColumns + ` FROM visitors WHERE whom_to_visit=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, hostName)
}

func (r *visitorRepository) ListByContact(ctx context.Context, contact string) ([]domain.Visitor, error) {
	query := `SELECT` + visitorColumns + ` FROM visitors WHERE contact=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, contact)
}

func (r *visitorRepository) UpdateContact(ctx context.Context, contact, newContact string) error {
	const query = `
        UPDATE visitors SET contact=$1, updated_at=NOW()
        WHERE contact=$2`
	return r.exec(ctx, query, newContact, contact)
}

func (r *visitorRepository) SetEntryTime(ctx context.Context, accessPass string, at time.Time) error {
	const query = `
        UPDATE visitors SET entry_time=$1, updated_at=NOW()
        WHERE access_pass=$2`
	return r.exec(ctx, query, at, accessPass)
}

func (r *visitorRepository) SetCheckoutTime(ctx context.Context, accessPass string, at time.Time) error {
	const query = `
        UPDATE visitors SET checkout_time=$1, updated_at=NOW()
        WHERE access_pass=$2`
	return r.exec(ctx, query, at, accessPass)
}

func (r *visitorRepository) Delete(ctx context.Context, accessPass string) error {
	const query = `DELETE FROM visitors WHERE access_pass=$1`
	return r.exec(ctx, query, accessPass)
}

func (r *visitorRepository) exec(ctx context.Context, query string, args ...any) error {
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *visitorRepository) scanOne(ctx context.Context, query string, arg any) (*domain.Visitor, error) {
	var v domain.Visitor
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&v.ID,
		&v.AccessPass,
		&v.Name,
		&v.Contact,
		&v.Gender,
		&v.Building,
		&v.Apartment,
		&v.WhomToVisit,
		&v.EntryTime,
		&v.CheckoutTime,
		&v.Age,
		&v.Address,
		&v.Zipcode,
		&v.Relation,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *visitorRepository) list(ctx context.Context, query string, args ...any) ([]domain.Visitor, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Visitor
	for rows.Next() {
		var v domain.Visitor
		if err := rows.Scan(
			&v.ID,
			&v.AccessPass,
			&v.Name,
			&v.Contact,
			&v.Gender,
			&v.Building,
			&v.Apartment,
			&v.WhomToVisit,
			&v.EntryTime,
			&v.CheckoutTime,
			&v.Age,
			&v.Address,
			&v.Zipcode,
			&v.Relation,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}
