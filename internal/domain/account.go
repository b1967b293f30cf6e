package domain

import (
	"time"
)

// Role classifies an account for transfer eligibility purposes.
// The identity subsystem owns role assignment; the ledger only reads it.
type Role string

const (
	RoleMember   Role = "member"
	RoleProvider Role = "provider"
)

// Account represents one ledger account holding a spendable credit balance.
type Account struct {
	ID          string
	DisplayName string
	Role        Role
	Balance     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateDebit checks whether the account can be debited by amount without
// going negative. Must be called inside the same atomic unit that performs
// the debit, against a balance re-read in that unit.
func (a *Account) ValidateDebit(amount int64) error {
	if a.Balance < amount {
		return &InsufficientBalanceError{Available: a.Balance, Requested: amount}
	}
	return nil
}

// CanReceiveCredits reports whether the account is an eligible transfer
// recipient under the default role policy.
func (a *Account) CanReceiveCredits() bool {
	return a.Role == RoleProvider
}
