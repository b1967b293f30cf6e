package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database
	// transaction. Prevents long-running units from holding row locks.
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultBalanceCacheTTL bounds how stale a cached balance may be before
	// the store is consulted again. Write paths invalidate eagerly.
	DefaultBalanceCacheTTL = 30 * time.Second

	// IdempotencyKeyTTL is how long HTTP idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)

// balanceCacheKey builds the cache key for an account's balance.
func balanceCacheKey(accountID string) string {
	return "balance:" + accountID
}
