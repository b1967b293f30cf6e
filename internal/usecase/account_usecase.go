package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/mindwell/creditledger/internal/domain"
)

// AccountUseCase handles account provisioning and balance reads.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	cache       Cache
	cacheTTL    time.Duration
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	cache Cache,
	cacheTTL time.Duration,
) *AccountUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultBalanceCacheTTL
	}

	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// ProvisionAccountInput represents input for provisioning an account. The ID
// is assigned by the identity subsystem; when empty a new one is generated.
type ProvisionAccountInput struct {
	ID          string
	DisplayName string
	Role        domain.Role
}

// ProvisionAccount creates a ledger account with a zero balance. Called by
// the identity subsystem when an account is created there.
func (uc *AccountUseCase) ProvisionAccount(ctx context.Context, input ProvisionAccountInput) (*domain.Account, error) {
	if input.ID == "" {
		input.ID = uc.idGen.Generate()
	}

	if err := domain.ValidateAccountID(input.ID); err != nil {
		return nil, err
	}

	if err := domain.ValidateDisplayName(input.DisplayName); err != nil {
		return nil, err
	}

	if err := domain.ValidateRole(input.Role); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:          input.ID,
		DisplayName: input.DisplayName,
		Role:        input.Role,
		Balance:     0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   account.ID,
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeAccountProvisioned,
		Payload: map[string]any{
			"account_id":   account.ID,
			"display_name": account.DisplayName,
			"role":         string(account.Role),
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetBalance returns the current spendable balance for an account, served
// from cache when fresh. Writers invalidate the cached value on commit, so a
// hit is at worst cacheTTL stale after a missed invalidation.
func (uc *AccountUseCase) GetBalance(ctx context.Context, id string) (int64, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, balanceCacheKey(id)); err == nil {
			if balance, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return balance, nil
			}
		}
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, balanceCacheKey(id), strconv.FormatInt(account.Balance, 10), uc.cacheTTL)
	}

	return account.Balance, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Limit <= 0 {
		input.Limit = domain.DefaultPageSize
	}

	if input.Limit > domain.MaxPageSize {
		input.Limit = domain.MaxPageSize
	}

	return uc.accountRepo.List(ctx, input.Limit, input.Offset)
}
