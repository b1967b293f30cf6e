package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/mindwell/creditledger/internal/domain"
)

// AccountRepository defines data access for account balances.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	// AdjustBalance atomically adds delta (which may be negative) to the
	// stored balance. Writer paths always call it inside a transaction.
	AdjustBalance(ctx context.Context, tx Transaction, id string, delta int64, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// EntryRepository defines data access for the append-only transaction ledger.
type EntryRepository interface {
	// Create appends one immutable entry. When the entry carries a settlement
	// reference that is already present, it returns
	// domain.ErrDuplicateSettlement without inserting.
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	ExistsBySettlementRef(ctx context.Context, tx Transaction, ref string) (bool, error)
	ListForAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error)
	CountForAccount(ctx context.Context, accountID string) (int64, error)
	// SumForAccount returns credits received minus credits sent, computed
	// from the ledger itself. Used by reconciliation.
	SumForAccount(ctx context.Context, accountID string) (int64, error)
}

// OutboxRepository defines data access for notification outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient store failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache defines caching operations for hot read paths.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage for the HTTP layer.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// SignatureVerifier verifies the authenticity of a raw settlement payload.
type SignatureVerifier interface {
	Verify(payload []byte, signature string) error
}

// RecipientPolicy is the eligibility predicate for transfer recipients. The
// business rule behind it is owned by the identity subsystem; the ledger only
// consumes the boolean fact.
type RecipientPolicy interface {
	EligibleRecipient(ctx context.Context, account *domain.Account) (bool, error)
}
