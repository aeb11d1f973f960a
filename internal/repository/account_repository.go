package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-directory/internal/domain"
)

// AccountRepository defines persistence access for identity records.
// Absence is signalled with pgx.ErrNoRows, never with a nil account.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByCPF(ctx context.Context, cpf string) (*domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = "id, name, email, cpf, password_hash, role, created_at, last_login_at, active"

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (id, name, email, cpf, password_hash, role, created_at, last_login_at, active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.CPF,
		account.PasswordHash,
		account.Role,
		account.CreatedAt,
		account.LastLoginAt,
		account.Active,
	)
	return translateError(err)
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts
        SET name=$1, email=$2, cpf=$3, password_hash=$4, role=$5, last_login_at=$6, active=$7
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		account.Name,
		account.Email,
		account.CPF,
		account.PasswordHash,
		account.Role,
		account.LastLoginAt,
		account.Active,
		account.ID,
	)
	if err != nil {
		return translateError(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getOne(ctx, "SELECT "+accountColumns+" FROM accounts WHERE id=$1", id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getOne(ctx, "SELECT "+accountColumns+" FROM accounts WHERE email=$1", email)
}

func (r *accountRepository) GetByCPF(ctx context.Context, cpf string) (*domain.Account, error) {
	return r.getOne(ctx, "SELECT "+accountColumns+" FROM accounts WHERE cpf=$1", cpf)
}

func (r *accountRepository) getOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.CPF,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
		&account.LastLoginAt,
		&account.Active,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
