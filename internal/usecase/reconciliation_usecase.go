package usecase

import (
	"context"
	"fmt"
	"time"
)

// ReconciliationUseCase verifies that stored balances agree with the ledger.
type ReconciliationUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(accountRepo AccountRepository, entryRepo EntryRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// ReconciliationResult compares one account's stored balance against the sum
// of its ledger entries (credits received minus credits sent).
type ReconciliationResult struct {
	AccountID       string
	RecordedBalance int64
	LedgerBalance   int64
	Difference      int64
	IsReconciled    bool
	CheckedAt       time.Time
}

// ReconcileAccount checks the core invariant for a single account:
// balance == sum(entries to account) - sum(entries from account).
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, accountID string) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	ledgerBalance, err := uc.entryRepo.SumForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	diff := account.Balance - ledgerBalance

	return &ReconciliationResult{
		AccountID:       accountID,
		RecordedBalance: account.Balance,
		LedgerBalance:   ledgerBalance,
		Difference:      diff,
		IsReconciled:    diff == 0,
		CheckedAt:       time.Now().UTC(),
	}, nil
}

// ReconciliationReport summarizes reconciliation across all accounts.
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReconciliationResult
	Consistent         bool
	CheckedAt          time.Time
}

// GenerateReport reconciles every account and collects discrepancies.
func (uc *ReconciliationUseCase) GenerateReport(ctx context.Context) (*ReconciliationReport, error) {
	report := &ReconciliationReport{
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     time.Now().UTC(),
	}

	const batchSize = 500

	for offset := 0; ; offset += batchSize {
		accounts, err := uc.accountRepo.List(ctx, batchSize, offset)
		if err != nil {
			return nil, err
		}

		if len(accounts) == 0 {
			break
		}

		for _, account := range accounts {
			result, err := uc.ReconcileAccount(ctx, account.ID)
			if err != nil {
				return nil, fmt.Errorf("reconcile account %s: %w", account.ID, err)
			}

			report.TotalAccounts++
			if result.IsReconciled {
				report.ReconciledAccounts++
			} else {
				report.Discrepancies = append(report.Discrepancies, result)
			}
		}

		if len(accounts) < batchSize {
			break
		}
	}

	report.Consistent = len(report.Discrepancies) == 0

	return report, nil
}
