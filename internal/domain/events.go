package domain

import "time"

// Event types
const (
	EventTypeCreditPurchased    = "credit.purchased"
	EventTypeCreditTransferred  = "credit.transferred"
	EventTypeAccountProvisioned = "account.provisioned"
)

// Aggregate types
const (
	AggregateTypeAccount = "account"
	AggregateTypeEntry   = "entry"
)

// OutboxEvent represents a notification event recorded in the same atomic
// unit as the ledger write and relayed to the notification pipeline later.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// CreditPurchasedEvent payload
type CreditPurchasedEvent struct {
	EntryID       string `json:"entry_id"`
	AccountID     string `json:"account_id"`
	Credits       int64  `json:"credits"`
	SettlementRef string `json:"settlement_ref"`
}

// CreditTransferredEvent payload
type CreditTransferredEvent struct {
	EntryID     string `json:"entry_id"`
	FromAccount string `json:"from_account_id"`
	ToAccount   string `json:"to_account_id"`
	Credits     int64  `json:"credits"`
}

// AccountProvisionedEvent payload
type AccountProvisionedEvent struct {
	AccountID   string `json:"account_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}
