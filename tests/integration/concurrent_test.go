//go:build integration

package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mindwell/creditledger/internal/adapter/repository/postgres"
	"github.com/mindwell/creditledger/internal/domain"
	"github.com/mindwell/creditledger/internal/usecase"
	"github.com/mindwell/creditledger/tests/testutil"
)

func TestConcurrentTransfers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	pool := testDB.Pool
	accountRepo := postgres.NewAccountRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier(zerolog.Nop())
	policy := usecase.NewRolePolicy()

	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, entryRepo, outboxRepo, policy, idGen, retrier, nil)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, entryRepo)

	t.Run("100 concurrent transfers from same account no overdraft", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		// Source holds exactly enough credits for 100 transfers of 10.
		source := testDB.CreateTestAccountWithBalance(ctx, "source", domain.RoleMember, 1000)
		dest := testDB.CreateTestAccount(ctx, "dest", domain.RoleProvider)

		numTransfers := 100
		transferAmount := int64(10)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
			errorCount   atomic.Int32
		)

		wg.Add(numTransfers)

		for range numTransfers {
			go func() {
				defer wg.Done()

				_, err := transferUC.Transfer(ctx, usecase.TransferInput{
					SenderID:    source.ID,
					RecipientID: dest.ID,
					Amount:      transferAmount,
				})
				if err != nil {
					errorCount.Add(1)
				} else {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		// All 100 should succeed (1000 / 10 = 100)
		if successCount.Load() != int32(numTransfers) {
			t.Errorf("expected %d successful transfers, got %d (errors: %d)", numTransfers, successCount.Load(), errorCount.Load())
		}

		sourceAcc, _ := accountRepo.GetByID(ctx, source.ID)
		destAcc, _ := accountRepo.GetByID(ctx, dest.ID)

		if sourceAcc.Balance != 0 {
			t.Errorf("expected source balance 0, got %d", sourceAcc.Balance)
		}

		if destAcc.Balance != 1000 {
			t.Errorf("expected dest balance 1000, got %d", destAcc.Balance)
		}
	})

	t.Run("concurrent transfers reject overdraft", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		source := testDB.CreateTestAccountWithBalance(ctx, "source", domain.RoleMember, 100)
		dest := testDB.CreateTestAccount(ctx, "dest", domain.RoleProvider)

		numTransfers := 20
		transferAmount := int64(10) // 20 * 10 = 200 > 100

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
			errorCount   atomic.Int32
		)

		wg.Add(numTransfers)

		for range numTransfers {
			go func() {
				defer wg.Done()

				_, err := transferUC.Transfer(ctx, usecase.TransferInput{
					SenderID:    source.ID,
					RecipientID: dest.ID,
					Amount:      transferAmount,
				})
				if err != nil {
					errorCount.Add(1)
				} else {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		// Only 10 should succeed (100 / 10 = 10)
		if successCount.Load() != 10 {
			t.Errorf("expected 10 successful transfers, got %d", successCount.Load())
		}

		sourceAcc, _ := accountRepo.GetByID(ctx, source.ID)
		if sourceAcc.Balance != 0 {
			t.Errorf("expected source balance 0, got %d", sourceAcc.Balance)
		}
		if sourceAcc.Balance < 0 {
			t.Errorf("balance went negative: %d", sourceAcc.Balance)
		}

		destAcc, _ := accountRepo.GetByID(ctx, dest.ID)
		if destAcc.Balance != 100 {
			t.Errorf("expected dest balance 100, got %d", destAcc.Balance)
		}
	})

	t.Run("deadlock prevention with cross-account transfers", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		// Both providers, so each side can receive.
		a := testDB.CreateTestAccountWithBalance(ctx, "a", domain.RoleProvider, 1000)
		b := testDB.CreateTestAccountWithBalance(ctx, "b", domain.RoleProvider, 1000)

		numTransfers := 50

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		// Half transfer A -> B, half transfer B -> A concurrently

		wg.Add(numTransfers * 2)

		for range numTransfers {
			go func() {
				defer wg.Done()

				_, err := transferUC.Transfer(ctx, usecase.TransferInput{
					SenderID:    a.ID,
					RecipientID: b.ID,
					Amount:      10,
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
			go func() {
				defer wg.Done()

				_, err := transferUC.Transfer(ctx, usecase.TransferInput{
					SenderID:    b.ID,
					RecipientID: a.ID,
					Amount:      10,
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		// All transfers should succeed (no deadlock)
		if successCount.Load() != int32(numTransfers*2) {
			t.Errorf("expected %d successful transfers, got %d", numTransfers*2, successCount.Load())
		}

		// Balances should be unchanged (equal opposite transfers)
		aAcc, _ := accountRepo.GetByID(ctx, a.ID)
		bAcc, _ := accountRepo.GetByID(ctx, b.ID)

		if aAcc.Balance != 1000 {
			t.Errorf("expected a balance 1000, got %d", aAcc.Balance)
		}

		if bAcc.Balance != 1000 {
			t.Errorf("expected b balance 1000, got %d", bAcc.Balance)
		}
	})

	t.Run("ledger reconciles after concurrent activity", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		source := testDB.CreateTestAccountWithBalance(ctx, "source", domain.RoleMember, 500)
		dest := testDB.CreateTestAccount(ctx, "dest", domain.RoleProvider)

		numTransfers := 30

		var wg sync.WaitGroup
		wg.Add(numTransfers)

		for range numTransfers {
			go func() {
				defer wg.Done()

				_, _ = transferUC.Transfer(ctx, usecase.TransferInput{
					SenderID:    source.ID,
					RecipientID: dest.ID,
					Amount:      10,
				})
			}()
		}

		wg.Wait()

		// Every stored balance must equal the sum of its ledger entries.
		report, err := reconciliationUC.GenerateReport(ctx)
		if err != nil {
			t.Fatalf("failed to generate reconciliation report: %v", err)
		}

		if !report.Consistent {
			t.Errorf("expected a consistent ledger, found %d discrepancies", len(report.Discrepancies))
		}

		if report.TotalAccounts != 2 {
			t.Errorf("expected 2 accounts in the report, got %d", report.TotalAccounts)
		}
	})
}
