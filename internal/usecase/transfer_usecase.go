package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mindwell/creditledger/internal/domain"
)

// TransferUseCase executes peer-to-peer credit transfers.
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	outboxRepo  OutboxRepository
	policy      RecipientPolicy
	idGen       IDGenerator
	retrier     Retrier
	cache       Cache
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	policy RecipientPolicy,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		outboxRepo:  outboxRepo,
		policy:      policy,
		idGen:       idGen,
		retrier:     retrier,
		cache:       cache,
	}
}

// TransferInput represents input for a credit transfer.
type TransferInput struct {
	SenderID    string
	RecipientID string
	Amount      int64
}

// Transfer moves credits from sender to recipient and appends the matching
// ledger entry, all inside one atomic unit. Validation that needs no lock
// runs before the unit opens; the sender balance is re-read inside the unit
// so concurrent transfers cannot jointly overdraw the account.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Entry, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.SenderID == input.RecipientID {
		return nil, domain.ErrSelfTransfer
	}

	recipient, err := uc.accountRepo.GetByID(ctx, input.RecipientID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrRecipientNotFound
		}

		return nil, err
	}

	eligible, err := uc.policy.EligibleRecipient(ctx, recipient)
	if err != nil {
		return nil, fmt.Errorf("recipient eligibility check: %w", err)
	}

	if !eligible {
		return nil, domain.ErrRecipientNotEligible
	}

	var entry *domain.Entry

	err = uc.retrier.Retry(ctx, func() error {
		var execErr error

		entry, execErr = uc.execute(ctx, input)

		return execErr
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateBalances(ctx, input.SenderID, input.RecipientID)

	return entry, nil
}

func (uc *TransferUseCase) execute(ctx context.Context, input TransferInput) (*domain.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock both accounts in sorted order (deadlock prevention).
	ids := []string{input.SenderID, input.RecipientID}
	sort.Strings(ids)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	var sender, recipient *domain.Account
	for _, a := range accounts {
		switch a.ID {
		case input.SenderID:
			sender = a
		case input.RecipientID:
			recipient = a
		}
	}

	if sender == nil {
		return nil, domain.ErrAccountNotFound
	}

	if recipient == nil {
		// Pre-checked above, but the account may vanish before the lock.
		return nil, domain.ErrRecipientNotFound
	}

	// Re-read-then-check inside the unit: the balance fetched here, under the
	// row lock, is the one that decides whether the debit may proceed.
	if err := sender.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if err := uc.accountRepo.AdjustBalance(ctx, tx, sender.ID, -input.Amount, now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.AdjustBalance(ctx, tx, recipient.ID, input.Amount, now); err != nil {
		return nil, err
	}

	from := sender.ID
	entry := &domain.Entry{
		ID:        uc.idGen.Generate(),
		From:      &from,
		To:        recipient.ID,
		Amount:    input.Amount,
		Kind:      domain.KindTransfer,
		Outcome:   domain.OutcomeSuccess,
		CreatedAt: now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   entry.ID,
		AggregateType: domain.AggregateTypeEntry,
		EventType:     domain.EventTypeCreditTransferred,
		Payload: map[string]any{
			"entry_id":        entry.ID,
			"from_account_id": sender.ID,
			"to_account_id":   recipient.ID,
			"credits":         input.Amount,
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

func (uc *TransferUseCase) invalidateBalances(ctx context.Context, accountIDs ...string) {
	if uc.cache == nil {
		return
	}

	for _, id := range accountIDs {
		_ = uc.cache.Delete(ctx, balanceCacheKey(id))
	}
}
