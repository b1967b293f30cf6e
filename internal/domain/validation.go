package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors
var (
	ErrInvalidAccountID   = errors.New("invalid account id")
	ErrInvalidDisplayName = errors.New("invalid display name")
	ErrInvalidRole        = errors.New("invalid account role")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxDisplayNameLength = 255
	MaxAccountIDLength   = 64

	// MaxTransferAmount caps a single credit movement.
	MaxTransferAmount = int64(1_000_000)

	// History pagination bounds
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ValidateAmount validates a credit amount for a transfer or purchase.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	if amount > MaxTransferAmount {
		return fmt.Errorf("%w: maximum is %d credits", ErrAmountTooLarge, MaxTransferAmount)
	}

	return nil
}

// ValidateAccountID validates an account identifier supplied by the identity
// subsystem.
func ValidateAccountID(id string) error {
	id = strings.TrimSpace(id)

	if id == "" || len(id) > MaxAccountIDLength {
		return ErrInvalidAccountID
	}

	return nil
}

// ValidateDisplayName validates an account display name.
func ValidateDisplayName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" || len(name) > MaxDisplayNameLength {
		return ErrInvalidDisplayName
	}

	return nil
}

// ValidateRole validates an account role.
func ValidateRole(role Role) error {
	switch role {
	case RoleMember, RoleProvider:
		return nil
	default:
		return ErrInvalidRole
	}
}

// NormalizePagination clamps history pagination parameters: page to >= 1 and
// pageSize to [1, MaxPageSize] with a default of DefaultPageSize.
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return page, pageSize
}
