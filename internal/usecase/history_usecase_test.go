package usecase_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/mindwell/creditledger/internal/domain"
	"github.com/mindwell/creditledger/internal/usecase"
	"github.com/mindwell/creditledger/internal/usecase/mocks"
)

func TestHistoryUseCase_GetHistory_Pagination(t *testing.T) {
	tests := []struct {
		name           string
		page           int
		pageSize       int
		total          int64
		wantPage       int
		wantPageSize   int
		wantOffset     int
		wantTotalPages int64
	}{
		{name: "defaults", page: 0, pageSize: 0, total: 45, wantPage: 1, wantPageSize: 20, wantOffset: 0, wantTotalPages: 3},
		{name: "second page", page: 2, pageSize: 10, total: 45, wantPage: 2, wantPageSize: 10, wantOffset: 10, wantTotalPages: 5},
		{name: "page size clamped to max", page: 1, pageSize: 500, total: 45, wantPage: 1, wantPageSize: 100, wantOffset: 0, wantTotalPages: 1},
		{name: "negative page corrected", page: -3, pageSize: 10, total: 45, wantPage: 1, wantPageSize: 10, wantOffset: 0, wantTotalPages: 5},
		{name: "exact multiple", page: 1, pageSize: 15, total: 45, wantPage: 1, wantPageSize: 15, wantOffset: 0, wantTotalPages: 3},
		{name: "empty history", page: 1, pageSize: 20, total: 0, wantPage: 1, wantPageSize: 20, wantOffset: 0, wantTotalPages: 0},
		{name: "page beyond end", page: 9, pageSize: 20, total: 45, wantPage: 9, wantPageSize: 20, wantOffset: 160, wantTotalPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			entryRepo := mocks.NewMockEntryRepository(ctrl)

			entryRepo.EXPECT().CountForAccount(gomock.Any(), "acc-1").Return(tt.total, nil)
			entryRepo.EXPECT().
				ListForAccount(gomock.Any(), "acc-1", tt.wantPageSize, tt.wantOffset).
				Return([]*domain.Entry{}, nil)

			uc := usecase.NewHistoryUseCase(entryRepo)
			history, err := uc.GetHistory(context.Background(), usecase.GetHistoryInput{
				AccountID: "acc-1",
				Page:      tt.page,
				PageSize:  tt.pageSize,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			p := history.Pagination
			if p.Page != tt.wantPage || p.PageSize != tt.wantPageSize {
				t.Errorf("pagination = %+v, want page %d size %d", p, tt.wantPage, tt.wantPageSize)
			}
			if p.Total != tt.total || p.TotalPages != tt.wantTotalPages {
				t.Errorf("totals = %d/%d, want %d/%d", p.Total, p.TotalPages, tt.total, tt.wantTotalPages)
			}
		})
	}
}

func TestHistoryUseCase_GetHistory_ReturnsBothDirections(t *testing.T) {
	entryRepo := mocks.NewFakeEntryRepository()
	now := time.Now().UTC()
	from := "acc-1"

	seed := []*domain.Entry{
		{ID: "e1", To: "acc-1", Amount: 50, Kind: domain.KindPurchase, CreatedAt: now.Add(-3 * time.Minute)},
		{ID: "e2", From: &from, To: "acc-2", Amount: 20, Kind: domain.KindTransfer, CreatedAt: now.Add(-2 * time.Minute)},
		{ID: "e3", To: "acc-3", Amount: 10, Kind: domain.KindPurchase, CreatedAt: now.Add(-time.Minute)},
	}
	for _, e := range seed {
		if err := entryRepo.Create(context.Background(), nil, e); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	uc := usecase.NewHistoryUseCase(entryRepo)
	history, err := uc.GetHistory(context.Background(), usecase.GetHistoryInput{AccountID: "acc-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(history.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history.Entries))
	}
	// Newest first.
	if history.Entries[0].ID != "e2" || history.Entries[1].ID != "e1" {
		t.Errorf("wrong order: %s, %s", history.Entries[0].ID, history.Entries[1].ID)
	}
	if history.Pagination.Total != 2 {
		t.Errorf("total = %d, want 2", history.Pagination.Total)
	}
}

func TestHistoryUseCase_GetEntry(t *testing.T) {
	entryRepo := mocks.NewFakeEntryRepository()
	if err := entryRepo.Create(context.Background(), nil, &domain.Entry{ID: "e1", To: "acc-1", Amount: 5}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	uc := usecase.NewHistoryUseCase(entryRepo)

	t.Run("existing entry", func(t *testing.T) {
		entry, err := uc.GetEntry(context.Background(), "e1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.ID != "e1" {
			t.Errorf("ID = %s, want e1", entry.ID)
		}
	})

	t.Run("missing entry", func(t *testing.T) {
		_, err := uc.GetEntry(context.Background(), "nope")
		if err == nil {
			t.Error("expected error, got nil")
		}
	})
}
