package usecase

import (
	"context"

	"github.com/mindwell/creditledger/internal/domain"
)

// HistoryUseCase is the read path over the ledger for a single account.
type HistoryUseCase struct {
	entryRepo EntryRepository
}

// NewHistoryUseCase creates a new HistoryUseCase.
func NewHistoryUseCase(entryRepo EntryRepository) *HistoryUseCase {
	return &HistoryUseCase{entryRepo: entryRepo}
}

// Pagination describes the page of history that was returned.
type Pagination struct {
	Page       int
	PageSize   int
	Total      int64
	TotalPages int64
}

// History is one page of ledger entries, newest first.
type History struct {
	Entries    []*domain.Entry
	Pagination Pagination
}

// GetHistoryInput represents input for reading account history.
type GetHistoryInput struct {
	AccountID string
	Page      int
	PageSize  int
}

// GetHistory returns entries where the account is sender or recipient, newest
// first. Page defaults to 1 and pageSize is clamped to [1, 100]; out-of-range
// values are corrected silently rather than rejected.
func (uc *HistoryUseCase) GetHistory(ctx context.Context, input GetHistoryInput) (*History, error) {
	page, pageSize := domain.NormalizePagination(input.Page, input.PageSize)
	offset := (page - 1) * pageSize

	total, err := uc.entryRepo.CountForAccount(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.ListForAccount(ctx, input.AccountID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}

	return &History{
		Entries: entries,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetEntry retrieves a single ledger entry by ID.
func (uc *HistoryUseCase) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}
