package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAmount(t *testing.T) {
	if err := ValidateAmount(1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateAmount(0); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	if err := ValidateAmount(-10); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	if err := ValidateAmount(MaxTransferAmount + 1); !errors.Is(err, ErrAmountTooLarge) {
		t.Errorf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidateAccountID(t *testing.T) {
	if err := ValidateAccountID("acc-1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateAccountID(""); !errors.Is(err, ErrInvalidAccountID) {
		t.Errorf("expected ErrInvalidAccountID, got %v", err)
	}

	if err := ValidateAccountID("  "); !errors.Is(err, ErrInvalidAccountID) {
		t.Errorf("expected ErrInvalidAccountID for whitespace id, got %v", err)
	}

	long := strings.Repeat("a", MaxAccountIDLength+1)
	if err := ValidateAccountID(long); !errors.Is(err, ErrInvalidAccountID) {
		t.Errorf("expected ErrInvalidAccountID for long id, got %v", err)
	}
}

func TestValidateRole(t *testing.T) {
	if err := ValidateRole(RoleMember); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateRole(RoleProvider); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateRole(Role("admin")); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{"defaults", 0, 0, 1, DefaultPageSize},
		{"negative page", -3, 10, 1, 10},
		{"oversized page size", 2, 500, 2, MaxPageSize},
		{"in range", 3, 25, 3, 25},
		{"page size exactly max", 1, MaxPageSize, 1, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := NormalizePagination(tt.page, tt.size)
			if page != tt.wantPage || size != tt.wantPageSize {
				t.Errorf("got (%d, %d), want (%d, %d)", page, size, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestSettlementEventHasRequiredMetadata(t *testing.T) {
	valid := SettlementEvent{
		Kind:          SettlementKindCompleted,
		SettlementRef: "evt_1",
		Beneficiary:   "acc-1",
		Credits:       250,
	}
	if !valid.HasRequiredMetadata() {
		t.Error("expected metadata to be complete")
	}

	missingRef := valid
	missingRef.SettlementRef = ""
	if missingRef.HasRequiredMetadata() {
		t.Error("missing ref should fail the metadata check")
	}

	missingBeneficiary := valid
	missingBeneficiary.Beneficiary = ""
	if missingBeneficiary.HasRequiredMetadata() {
		t.Error("missing beneficiary should fail the metadata check")
	}

	zeroCredits := valid
	zeroCredits.Credits = 0
	if zeroCredits.HasRequiredMetadata() {
		t.Error("non-positive credits should fail the metadata check")
	}
}
