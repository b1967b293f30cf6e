package domain

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr error
	}{
		{
			name: "valid transfer",
			entry: Entry{
				From:   strPtr("acc-1"),
				To:     "acc-2",
				Amount: 100,
				Kind:   KindTransfer,
			},
		},
		{
			name: "valid purchase",
			entry: Entry{
				To:            "acc-1",
				Amount:        250,
				Kind:          KindPurchase,
				SettlementRef: strPtr("evt_1"),
			},
		},
		{
			name: "missing recipient",
			entry: Entry{
				From:   strPtr("acc-1"),
				Amount: 100,
				Kind:   KindTransfer,
			},
			wantErr: ErrMissingRecipient,
		},
		{
			name: "zero amount",
			entry: Entry{
				From:   strPtr("acc-1"),
				To:     "acc-2",
				Amount: 0,
				Kind:   KindTransfer,
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "negative amount",
			entry: Entry{
				From:   strPtr("acc-1"),
				To:     "acc-2",
				Amount: -5,
				Kind:   KindTransfer,
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "transfer without sender",
			entry: Entry{
				To:     "acc-2",
				Amount: 100,
				Kind:   KindTransfer,
			},
			wantErr: ErrMissingSender,
		},
		{
			name: "self transfer",
			entry: Entry{
				From:   strPtr("acc-1"),
				To:     "acc-1",
				Amount: 100,
				Kind:   KindTransfer,
			},
			wantErr: ErrSelfTransfer,
		},
		{
			name: "transfer with settlement ref",
			entry: Entry{
				From:          strPtr("acc-1"),
				To:            "acc-2",
				Amount:        100,
				Kind:          KindTransfer,
				SettlementRef: strPtr("evt_1"),
			},
			wantErr: ErrUnexpectedSettlementRef,
		},
		{
			name: "purchase with sender",
			entry: Entry{
				From:          strPtr("acc-1"),
				To:            "acc-2",
				Amount:        100,
				Kind:          KindPurchase,
				SettlementRef: strPtr("evt_1"),
			},
			wantErr: ErrUnexpectedSender,
		},
		{
			name: "purchase without settlement ref",
			entry: Entry{
				To:     "acc-1",
				Amount: 100,
				Kind:   KindPurchase,
			},
			wantErr: ErrMissingSettlementRef,
		},
		{
			name: "unknown kind",
			entry: Entry{
				To:     "acc-1",
				Amount: 100,
				Kind:   EntryKind("REFUND"),
			},
			wantErr: ErrInvalidEntryKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAccountValidateDebit(t *testing.T) {
	acc := &Account{ID: "acc-1", Balance: 50}

	if err := acc.ValidateDebit(50); err != nil {
		t.Errorf("debit of full balance should pass, got %v", err)
	}

	err := acc.ValidateDebit(100)
	if err == nil {
		t.Fatal("expected insufficient balance error")
	}

	var insufficient *InsufficientBalanceError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientBalanceError, got %T", err)
	}
	if insufficient.Available != 50 {
		t.Errorf("expected available 50, got %d", insufficient.Available)
	}
	if !IsInsufficientBalance(err) {
		t.Error("IsInsufficientBalance should report true")
	}
}

func TestAccountCanReceiveCredits(t *testing.T) {
	provider := &Account{ID: "acc-1", Role: RoleProvider}
	member := &Account{ID: "acc-2", Role: RoleMember}

	if !provider.CanReceiveCredits() {
		t.Error("provider accounts should be eligible recipients")
	}
	if member.CanReceiveCredits() {
		t.Error("member accounts should not be eligible recipients")
	}
}
