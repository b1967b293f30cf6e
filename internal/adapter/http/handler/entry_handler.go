package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindwell/creditledger/internal/adapter/http/dto"
	"github.com/mindwell/creditledger/internal/domain"
	"github.com/mindwell/creditledger/internal/usecase"
)

// HistoryService defines the behavior needed by EntryHandler.
type HistoryService interface {
	GetHistory(ctx context.Context, input usecase.GetHistoryInput) (*usecase.History, error)
	GetEntry(ctx context.Context, id string) (*domain.Entry, error)
}

// EntryHandler handles ledger entry HTTP requests.
type EntryHandler struct {
	historyUC HistoryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(historyUC HistoryService) *EntryHandler {
	return &EntryHandler{historyUC: historyUC}
}

// ListByAccount returns one page of an account's ledger history, newest
// first. Out-of-range page and page_size values are corrected, not rejected.
func (h *EntryHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	history, err := h.historyUC.GetHistory(r.Context(), usecase.GetHistoryInput{
		AccountID: accountID,
		Page:      parseIntQuery(r, "page", 0),
		PageSize:  parseIntQuery(r, "page_size", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryFromUseCase(history))
}

// Get retrieves a single ledger entry by ID.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.historyUC.GetEntry(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}
