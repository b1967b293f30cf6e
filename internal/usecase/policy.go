package usecase

import (
	"context"

	"github.com/mindwell/creditledger/internal/domain"
)

// RolePolicy is the default RecipientPolicy: credits may only be transferred
// to verified provider accounts. The identity subsystem assigns roles; this
// policy only reads them.
type RolePolicy struct{}

// NewRolePolicy creates a new RolePolicy.
func NewRolePolicy() *RolePolicy {
	return &RolePolicy{}
}

// EligibleRecipient reports whether the account may receive transfers.
func (p *RolePolicy) EligibleRecipient(_ context.Context, account *domain.Account) (bool, error) {
	return account.CanReceiveCredits(), nil
}
