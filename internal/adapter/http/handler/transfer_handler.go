package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mindwell/creditledger/internal/adapter/http/dto"
	"github.com/mindwell/creditledger/internal/adapter/http/middleware"
	"github.com/mindwell/creditledger/internal/domain"
	"github.com/mindwell/creditledger/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Entry, error)
}

// TransferHandler handles credit transfer HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create moves credits from the authenticated sender to a recipient. When
// the request is unauthenticated the sender comes from the body instead.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	senderID := req.SenderID
	if id, ok := middleware.AccountIDFromContext(r.Context()); ok {
		senderID = id
	}
	if senderID == "" {
		writeError(w, http.StatusBadRequest, "missing sender", "sender could not be determined")
		return
	}

	entry, err := h.transferUC.Transfer(r.Context(), req.ToUseCaseInput(senderID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to transfer credits", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}
