package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mindwell/creditledger/internal/domain"
)

// Acknowledgement reasons for settlement events that do not credit a balance.
const (
	ReasonIgnoredKind = "ignored_kind"
	ReasonBadMetadata = "bad_metadata"
	ReasonDuplicate   = "duplicate"
)

// SettlementUseCase ingests confirmed external-payment events and credits the
// beneficiary at most once per settlement reference.
type SettlementUseCase struct {
	verifier    SignatureVerifier
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	retrier     Retrier
	cache       Cache
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(
	verifier SignatureVerifier,
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
) *SettlementUseCase {
	return &SettlementUseCase{
		verifier:    verifier,
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		retrier:     retrier,
		cache:       cache,
	}
}

// IngestInput carries the raw signed payload as delivered by the sender.
// Signature verification runs against the raw bytes, before any parsing.
type IngestInput struct {
	Payload   []byte
	Signature string
}

// IngestResult reports what happened to a settlement event. Processed with an
// empty reason means the beneficiary was credited by this call; Processed with
// reason "duplicate" means a previous delivery already did.
type IngestResult struct {
	Processed bool
	Reason    string
	Entry     *domain.Entry
}

// Ingest verifies, parses and applies one settlement event. A returned error
// means the event was valid but could not be applied; the caller should signal
// the sender to redeliver, which is safe because the settlement reference
// guard makes reprocessing a no-op.
func (uc *SettlementUseCase) Ingest(ctx context.Context, input IngestInput) (*IngestResult, error) {
	if err := uc.verifier.Verify(input.Payload, input.Signature); err != nil {
		return nil, domain.ErrInvalidSignature
	}

	var event domain.SettlementEvent
	if err := json.Unmarshal(input.Payload, &event); err != nil {
		// Authenticated but unparseable: acknowledge so the sender does not
		// redeliver the same broken payload forever.
		return &IngestResult{Processed: false, Reason: ReasonBadMetadata}, nil
	}

	if event.Kind != domain.SettlementKindCompleted {
		return &IngestResult{Processed: false, Reason: ReasonIgnoredKind}, nil
	}

	if !event.HasRequiredMetadata() {
		return &IngestResult{Processed: false, Reason: ReasonBadMetadata}, nil
	}

	var result *IngestResult

	err := uc.retrier.Retry(ctx, func() error {
		var execErr error

		result, execErr = uc.apply(ctx, &event)

		return execErr
	})
	if err != nil {
		return nil, err
	}

	if result.Processed && result.Reason == "" {
		uc.invalidateBalance(ctx, event.Beneficiary)
	}

	return result, nil
}

func (uc *SettlementUseCase) apply(ctx context.Context, event *domain.SettlementEvent) (*IngestResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Idempotency guard, first pass: a prior delivery already settled this
	// reference. The unique index below still backs this up under races.
	exists, err := uc.entryRepo.ExistsBySettlementRef(ctx, tx, event.SettlementRef)
	if err != nil {
		return nil, err
	}

	if exists {
		return &IngestResult{Processed: true, Reason: ReasonDuplicate}, nil
	}

	now := time.Now().UTC()

	if err := uc.accountRepo.AdjustBalance(ctx, tx, event.Beneficiary, event.Credits, now); err != nil {
		// Includes the beneficiary vanishing between delivery and apply. The
		// unit rolls back and the caller reports a retryable failure.
		return nil, fmt.Errorf("credit beneficiary %s: %w", event.Beneficiary, err)
	}

	ref := event.SettlementRef
	entry := &domain.Entry{
		ID:            uc.idGen.Generate(),
		To:            event.Beneficiary,
		Amount:        event.Credits,
		Kind:          domain.KindPurchase,
		Outcome:       domain.OutcomeSuccess,
		SettlementRef: &ref,
		PricePaid:     event.AmountPaid,
		PriceCurrency: event.Currency,
		CreatedAt:     now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		if errors.Is(err, domain.ErrDuplicateSettlement) {
			// Two deliveries raced past the existence check; the unique
			// constraint decided. Roll back the credit and report duplicate.
			return &IngestResult{Processed: true, Reason: ReasonDuplicate}, nil
		}

		return nil, err
	}

	outboxEvent := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   entry.ID,
		AggregateType: domain.AggregateTypeEntry,
		EventType:     domain.EventTypeCreditPurchased,
		Payload: map[string]any{
			"entry_id":       entry.ID,
			"account_id":     event.Beneficiary,
			"credits":        event.Credits,
			"settlement_ref": event.SettlementRef,
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, outboxEvent); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &IngestResult{Processed: true, Entry: entry}, nil
}

func (uc *SettlementUseCase) invalidateBalance(ctx context.Context, accountID string) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, balanceCacheKey(accountID))
}
