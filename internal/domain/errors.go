package domain

import (
	"errors"
	"fmt"
)

var (
	// Account errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")

	// Transfer errors
	ErrInvalidAmount        = errors.New("amount must be a positive number of credits")
	ErrSelfTransfer         = errors.New("cannot transfer credits to yourself")
	ErrRecipientNotFound    = errors.New("recipient not found")
	ErrRecipientNotEligible = errors.New("recipient is not eligible to receive credit transfers")

	// Settlement errors
	ErrInvalidSignature     = errors.New("settlement event signature is invalid")
	ErrDuplicateSettlement  = errors.New("settlement reference already processed")
	ErrMissingSettlementRef = errors.New("purchase entry requires a settlement reference")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")

	// Entry errors
	ErrEntryNotFound           = errors.New("ledger entry not found")
	ErrInvalidEntryKind        = errors.New("invalid entry kind")
	ErrMissingRecipient        = errors.New("entry recipient is required")
	ErrMissingSender           = errors.New("transfer entry requires a sender")
	ErrUnexpectedSender        = errors.New("purchase entry must not have a sender")
	ErrUnexpectedSettlementRef = errors.New("transfer entry must not carry a settlement reference")
)

// InsufficientBalanceError is returned when a debit would overdraw the sender.
// It carries the balance observed inside the atomic unit so callers can report
// what was actually available.
type InsufficientBalanceError struct {
	Available int64
	Requested int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %d credits, requested %d", e.Available, e.Requested)
}

// IsInsufficientBalance reports whether err is an InsufficientBalanceError.
func IsInsufficientBalance(err error) bool {
	var target *InsufficientBalanceError
	return errors.As(err, &target)
}
