package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/visitor-service/internal/domain"
)

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	UpdatePhone(ctx context.Context, username, phone string) error
	Delete(ctx context.Context, username string) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

// Create inserts the account. The insert is conditional on the unique
// username/email constraints so concurrent registrations cannot race
// past an existence check; ErrDuplicate is returned when a key exists.
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (username, email, password_hash, role, name, phone)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT DO NOTHING
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.Name,
		account.Phone,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err == pgx.ErrNoRows {
		return ErrDuplicate
	}
	return err
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `
        SELECT id, username, email, password_hash, role, name, phone, created_at, updated_at
        FROM accounts WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	const query = `
        SELECT id, username, email, password_hash, role, name, phone, created_at, updated_at
        FROM accounts WHERE username=$1`
	return r.scanOne(ctx, query, username)
}

func (r *accountRepository) UpdatePhone(ctx context.Context, username, phone string) error {
	const query = `
        UPDATE accounts SET phone=$1, updated_at=NOW()
        WHERE username=$2`

	cmd, err := r.pool.Exec(ctx, query, phone, username)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, username string) error {
	const query = `DELETE FROM accounts WHERE username=$1`

	cmd, err := r.pool.Exec(ctx, query, username)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) scanOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.Name,
		&account.Phone,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
