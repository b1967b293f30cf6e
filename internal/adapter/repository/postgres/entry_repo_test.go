package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/mindwell/creditledger/internal/domain"
)

func beginMockTx(t *testing.T, mockPool pgxmock.PgxPoolIface) *Tx {
	t.Helper()
	mockPool.ExpectBegin()
	pgxTx, err := mockPool.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	return &Tx{tx: pgxTx}
}

func TestEntryRepositoryCreateMapsDuplicateRef(t *testing.T) {
	mockPool := newMockPool(t)
	tx := beginMockTx(t, mockPool)

	mockPool.ExpectExec("INSERT INTO entries").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "entries_settlement_ref_uniq"})

	repo := &EntryRepository{}
	ref := "ref-1"
	err := repo.Create(context.Background(), tx, &domain.Entry{
		ID:            "e1",
		To:            "acc-1",
		Amount:        50,
		Kind:          domain.KindPurchase,
		Outcome:       domain.OutcomeSuccess,
		SettlementRef: &ref,
		CreatedAt:     time.Now().UTC(),
	})

	if !errors.Is(err, domain.ErrDuplicateSettlement) {
		t.Fatalf("expected ErrDuplicateSettlement, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestEntryRepositoryCreatePassesThroughOtherViolations(t *testing.T) {
	mockPool := newMockPool(t)
	tx := beginMockTx(t, mockPool)

	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "entries_to_account_id_fkey"}
	mockPool.ExpectExec("INSERT INTO entries").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgErr)

	repo := &EntryRepository{}
	from := "acc-1"
	err := repo.Create(context.Background(), tx, &domain.Entry{
		ID:        "e2",
		From:      &from,
		To:        "acc-ghost",
		Amount:    20,
		Kind:      domain.KindTransfer,
		Outcome:   domain.OutcomeSuccess,
		CreatedAt: time.Now().UTC(),
	})

	if !errors.Is(err, pgErr) {
		t.Fatalf("expected raw pg error, got %v", err)
	}
	if errors.Is(err, domain.ErrDuplicateSettlement) {
		t.Fatal("foreign key violation must not be reported as duplicate settlement")
	}

	assertExpectations(t, mockPool)
}

func TestAccountRepositoryAdjustBalanceMissingAccount(t *testing.T) {
	mockPool := newMockPool(t)
	tx := beginMockTx(t, mockPool)

	mockPool.ExpectExec("UPDATE accounts").
		WithArgs("acc-ghost", int64(10), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := &AccountRepository{}
	err := repo.AdjustBalance(context.Background(), tx, "acc-ghost", 10, time.Now().UTC())

	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	assertExpectations(t, mockPool)
}
