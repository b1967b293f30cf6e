package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind distinguishes how credits entered or moved within the ledger.
type EntryKind string

const (
	// KindPurchase is an externally funded credit purchase (settlement).
	KindPurchase EntryKind = "PURCHASE"
	// KindTransfer is a peer-to-peer credit movement between accounts.
	KindTransfer EntryKind = "TRANSFER"
)

// Outcome records the final state of an entry. Entries are immutable once
// written, so the outcome is set exactly once.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFailed  Outcome = "FAILED"
)

// Entry is one immutable, append-only ledger record of a balance-affecting
// event. PURCHASE entries have no sender and carry the external settlement
// reference; TRANSFER entries have both sides and no reference.
type Entry struct {
	ID            string
	From          *string
	To            string
	Amount        int64
	Kind          EntryKind
	Outcome       Outcome
	SettlementRef *string
	PricePaid     *decimal.Decimal
	PriceCurrency string
	CreatedAt     time.Time
}

// Validate checks the structural invariants of an entry before it is written.
func (e *Entry) Validate() error {
	if e.To == "" {
		return ErrMissingRecipient
	}

	if e.Amount <= 0 {
		return ErrInvalidAmount
	}

	switch e.Kind {
	case KindTransfer:
		if e.From == nil || *e.From == "" {
			return ErrMissingSender
		}
		if *e.From == e.To {
			return ErrSelfTransfer
		}
		if e.SettlementRef != nil {
			return ErrUnexpectedSettlementRef
		}
	case KindPurchase:
		if e.From != nil {
			return ErrUnexpectedSender
		}
		if e.SettlementRef == nil || *e.SettlementRef == "" {
			return ErrMissingSettlementRef
		}
	default:
		return ErrInvalidEntryKind
	}

	return nil
}
