package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mindwell/creditledger/internal/domain"
	"github.com/mindwell/creditledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository over the append-only
// entries table.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const insertEntrySQL = `
INSERT INTO entries (id, from_account_id, to_account_id, amount, kind, outcome, settlement_ref, price_paid, price_currency, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// Create appends a ledger entry. A unique index on settlement_ref turns a
// second entry for the same settlement into domain.ErrDuplicateSettlement.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	_, err := txQuerier(tx).Exec(ctx, insertEntrySQL,
		entry.ID,
		entry.From,
		entry.To,
		entry.Amount,
		string(entry.Kind),
		string(entry.Outcome),
		entry.SettlementRef,
		entry.PricePaid,
		nullableString(entry.PriceCurrency),
		entry.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation && strings.Contains(pgErr.ConstraintName, "settlement_ref") {
			return domain.ErrDuplicateSettlement
		}

		return err
	}

	return nil
}

const selectEntrySQL = `
SELECT id, from_account_id, to_account_id, amount, kind, outcome, settlement_ref, price_paid, price_currency, created_at
FROM entries
WHERE id = $1`

// GetByID retrieves a ledger entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	entry, err := scanEntry(r.pool.QueryRow(ctx, selectEntrySQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

const existsBySettlementRefSQL = `
SELECT EXISTS (SELECT 1 FROM entries WHERE settlement_ref = $1)`

// ExistsBySettlementRef reports whether a settlement reference was already
// recorded. Runs inside the caller's transaction so the answer stays valid
// until commit.
func (r *EntryRepository) ExistsBySettlementRef(ctx context.Context, tx usecase.Transaction, ref string) (bool, error) {
	var exists bool

	err := txQuerier(tx).QueryRow(ctx, existsBySettlementRefSQL, ref).Scan(&exists)

	return exists, err
}

const listForAccountSQL = `
SELECT id, from_account_id, to_account_id, amount, kind, outcome, settlement_ref, price_paid, price_currency, created_at
FROM entries
WHERE to_account_id = $1 OR from_account_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

// ListForAccount returns entries touching the account, newest first.
func (r *EntryRepository) ListForAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, listForAccountSQL, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

const countForAccountSQL = `
SELECT COUNT(*) FROM entries
WHERE to_account_id = $1 OR from_account_id = $1`

// CountForAccount counts entries touching the account.
func (r *EntryRepository) CountForAccount(ctx context.Context, accountID string) (int64, error) {
	var count int64

	err := r.pool.QueryRow(ctx, countForAccountSQL, accountID).Scan(&count)

	return count, err
}

const sumForAccountSQL = `
SELECT COALESCE(SUM(CASE WHEN to_account_id = $1 THEN amount ELSE -amount END), 0)
FROM entries
WHERE to_account_id = $1 OR from_account_id = $1`

// SumForAccount computes the account balance implied by the ledger alone:
// credits received minus credits sent.
func (r *EntryRepository) SumForAccount(ctx context.Context, accountID string) (int64, error) {
	var sum int64

	err := r.pool.QueryRow(ctx, sumForAccountSQL, accountID).Scan(&sum)

	return sum, err
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var entry domain.Entry
	var kind, outcome string
	var currency *string

	err := row.Scan(
		&entry.ID,
		&entry.From,
		&entry.To,
		&entry.Amount,
		&kind,
		&outcome,
		&entry.SettlementRef,
		&entry.PricePaid,
		&currency,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Kind = domain.EntryKind(kind)
	entry.Outcome = domain.Outcome(outcome)
	if currency != nil {
		entry.PriceCurrency = *currency
	}

	return &entry, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
