package dto

import (
	"github.com/mindwell/creditledger/internal/domain"
	"github.com/mindwell/creditledger/internal/usecase"
)

// ProvisionAccountRequest represents a request to provision a ledger account.
// The ID is optional; when omitted the ledger assigns one.
type ProvisionAccountRequest struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// ToUseCaseInput converts to use case input.
func (r *ProvisionAccountRequest) ToUseCaseInput() usecase.ProvisionAccountInput {
	return usecase.ProvisionAccountInput{
		ID:          r.ID,
		DisplayName: r.DisplayName,
		Role:        domain.Role(r.Role),
	}
}

// TransferRequest represents a request to transfer credits to another
// account. The sender comes from the authenticated context when auth is
// enabled; sender_id is honored only as a fallback.
type TransferRequest struct {
	SenderID    string `json:"sender_id,omitempty"`
	RecipientID string `json:"recipient_id"`
	Amount      int64  `json:"amount"`
}

// ToUseCaseInput converts to use case input using the resolved sender.
func (r *TransferRequest) ToUseCaseInput(senderID string) usecase.TransferInput {
	return usecase.TransferInput{
		SenderID:    senderID,
		RecipientID: r.RecipientID,
		Amount:      r.Amount,
	}
}
