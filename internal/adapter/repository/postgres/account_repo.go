package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mindwell/creditledger/internal/domain"
	"github.com/mindwell/creditledger/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const insertAccountSQL = `
INSERT INTO accounts (id, display_name, role, balance, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return createAccount(ctx, r.pool, account)
}

// CreateTx creates a new account inside a transaction.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	return createAccount(ctx, txQuerier(tx), account)
}

func createAccount(ctx context.Context, q querier, account *domain.Account) error {
	_, err := q.Exec(ctx, insertAccountSQL,
		account.ID,
		account.DisplayName,
		string(account.Role),
		account.Balance,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrAccountAlreadyExists
		}

		return err
	}

	return nil
}

const selectAccountSQL = `
SELECT id, display_name, role, balance, created_at, updated_at
FROM accounts
WHERE id = $1`

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, selectAccountSQL, id))
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return scanAccount(txQuerier(tx).QueryRow(ctx, selectAccountSQL+" FOR UPDATE", id))
}

const selectAccountsForUpdateSQL = `
SELECT id, display_name, role, balance, created_at, updated_at
FROM accounts
WHERE id = ANY($1)
ORDER BY id
FOR UPDATE`

// GetByIDsForUpdate retrieves multiple accounts with FOR UPDATE locks. Rows
// lock in id order regardless of the order ids were passed in.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	rows, err := txQuerier(tx).Query(ctx, selectAccountsForUpdateSQL, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0, len(ids))

	for rows.Next() {
		var account domain.Account
		var role string

		if err := rows.Scan(&account.ID, &account.DisplayName, &role, &account.Balance, &account.CreatedAt, &account.UpdatedAt); err != nil {
			return nil, err
		}

		account.Role = domain.Role(role)
		accounts = append(accounts, &account)
	}

	return accounts, rows.Err()
}

const adjustBalanceSQL = `
UPDATE accounts
SET balance = balance + $2, updated_at = $3
WHERE id = $1`

// AdjustBalance atomically adds delta to the stored balance. The CHECK
// constraint on the column rejects any adjustment that would go negative.
func (r *AccountRepository) AdjustBalance(ctx context.Context, tx usecase.Transaction, id string, delta int64, updatedAt time.Time) error {
	tag, err := txQuerier(tx).Exec(ctx, adjustBalanceSQL, id, delta, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

const listAccountsSQL = `
SELECT id, display_name, role, balance, created_at, updated_at
FROM accounts
ORDER BY created_at, id
LIMIT $1 OFFSET $2`

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, listAccountsSQL, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account

	for rows.Next() {
		var account domain.Account
		var role string

		if err := rows.Scan(&account.ID, &account.DisplayName, &role, &account.Balance, &account.CreatedAt, &account.UpdatedAt); err != nil {
			return nil, err
		}

		account.Role = domain.Role(role)
		accounts = append(accounts, &account)
	}

	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	var role string

	err := row.Scan(&account.ID, &account.DisplayName, &role, &account.Balance, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.Role = domain.Role(role)

	return &account, nil
}
