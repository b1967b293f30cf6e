package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mindwell/creditledger/internal/domain"
	"github.com/mindwell/creditledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Balance     int64     `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:          a.ID,
		DisplayName: a.DisplayName,
		Role:        string(a.Role),
		Balance:     a.Balance,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts. Clients page forward
// until a short page; no total count is reported.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
}

// BalanceResponse reports an account's current credit balance.
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   int64  `json:"balance"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID            string           `json:"id"`
	From          *string          `json:"from,omitempty"`
	To            string           `json:"to"`
	Amount        int64            `json:"amount"`
	Kind          string           `json:"kind"`
	Outcome       string           `json:"outcome"`
	SettlementRef *string          `json:"settlement_ref,omitempty"`
	PricePaid     *decimal.Decimal `json:"price_paid,omitempty"`
	PriceCurrency string           `json:"price_currency,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		From:          e.From,
		To:            e.To,
		Amount:        e.Amount,
		Kind:          string(e.Kind),
		Outcome:       string(e.Outcome),
		SettlementRef: e.SettlementRef,
		PricePaid:     e.PricePaid,
		PriceCurrency: e.PriceCurrency,
		CreatedAt:     e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// PaginationResponse describes the returned page of history.
type PaginationResponse struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// HistoryResponse is one page of an account's ledger history.
type HistoryResponse struct {
	Entries    []*EntryResponse   `json:"entries"`
	Pagination PaginationResponse `json:"pagination"`
}

// HistoryFromUseCase converts a history page to a response.
func HistoryFromUseCase(h *usecase.History) *HistoryResponse {
	return &HistoryResponse{
		Entries: EntriesFromDomain(h.Entries),
		Pagination: PaginationResponse{
			Page:       h.Pagination.Page,
			PageSize:   h.Pagination.PageSize,
			Total:      h.Pagination.Total,
			TotalPages: h.Pagination.TotalPages,
		},
	}
}

// SettlementAckResponse acknowledges a settlement event delivery. Processed
// with reason "duplicate" tells the sender a previous delivery already
// credited the beneficiary.
type SettlementAckResponse struct {
	Processed bool   `json:"processed"`
	Reason    string `json:"reason,omitempty"`
	EntryID   string `json:"entry_id,omitempty"`
}

// ReconciliationResultResponse reports one account's reconciliation outcome.
type ReconciliationResultResponse struct {
	AccountID       string    `json:"account_id"`
	RecordedBalance int64     `json:"recorded_balance"`
	LedgerBalance   int64     `json:"ledger_balance"`
	Difference      int64     `json:"difference"`
	IsReconciled    bool      `json:"is_reconciled"`
	CheckedAt       time.Time `json:"checked_at"`
}

// ReconciliationResultFromUseCase converts a reconciliation result.
func ReconciliationResultFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResultResponse {
	return &ReconciliationResultResponse{
		AccountID:       r.AccountID,
		RecordedBalance: r.RecordedBalance,
		LedgerBalance:   r.LedgerBalance,
		Difference:      r.Difference,
		IsReconciled:    r.IsReconciled,
		CheckedAt:       r.CheckedAt,
	}
}

// ReconciliationReportResponse summarizes reconciliation across accounts.
type ReconciliationReportResponse struct {
	TotalAccounts      int                             `json:"total_accounts"`
	ReconciledAccounts int                             `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResultResponse `json:"discrepancies"`
	Consistent         bool                            `json:"consistent"`
	CheckedAt          time.Time                       `json:"checked_at"`
}

// ReconciliationReportFromUseCase converts a reconciliation report.
func ReconciliationReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResultResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationResultFromUseCase(d)
	}
	return &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      discrepancies,
		Consistent:         r.Consistent,
		CheckedAt:          r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
