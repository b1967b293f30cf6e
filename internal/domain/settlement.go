package domain

import (
	"github.com/shopspring/decimal"
)

// Settlement event kinds delivered by the payment-processor integration.
// Only completed settlements affect balances; everything else is acknowledged
// and ignored.
const (
	SettlementKindCompleted = "settlement.completed"
	SettlementKindExpired   = "settlement.expired"
	SettlementKindFailed    = "settlement.failed"
)

// SettlementEvent is the parsed payload of a signed settlement notification.
// The signature is verified against the raw payload bytes before this struct
// is trusted.
type SettlementEvent struct {
	Kind          string           `json:"kind"`
	SettlementRef string           `json:"settlement_ref"`
	Beneficiary   string           `json:"beneficiary_account_id"`
	Credits       int64            `json:"credits"`
	AmountPaid    *decimal.Decimal `json:"amount_paid,omitempty"`
	Currency      string           `json:"currency,omitempty"`
}

// HasRequiredMetadata reports whether the event carries everything needed to
// credit a beneficiary. Events failing this check are acknowledged without
// processing so the sender never redelivers an unparseable payload forever.
func (e *SettlementEvent) HasRequiredMetadata() bool {
	return e.Beneficiary != "" && e.SettlementRef != "" && e.Credits > 0
}
