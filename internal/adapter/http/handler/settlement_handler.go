package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/mindwell/creditledger/internal/adapter/http/dto"
	"github.com/mindwell/creditledger/internal/domain"
	"github.com/mindwell/creditledger/internal/usecase"
)

// SignatureHeader carries the hex HMAC of the raw webhook body.
const SignatureHeader = "X-Settlement-Signature"

// maxWebhookBody caps how much of a webhook delivery is read.
const maxWebhookBody = 1 << 20

// SettlementService defines the behavior needed by SettlementHandler.
type SettlementService interface {
	Ingest(ctx context.Context, input usecase.IngestInput) (*usecase.IngestResult, error)
}

// SettlementHandler receives signed settlement webhooks from the payment
// processor.
type SettlementHandler struct {
	settlementUC SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC}
}

// Receive handles one webhook delivery. The signature is verified against
// the raw body, so the body is read before any parsing. A 500 tells the
// sender to redeliver; reprocessing is safe because settlement references
// are applied at most once.
func (h *SettlementHandler) Receive(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body", err.Error())
		return
	}

	result, err := h.settlementUC.Ingest(r.Context(), usecase.IngestInput{
		Payload:   payload,
		Signature: r.Header.Get(SignatureHeader),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSignature) {
			writeError(w, http.StatusUnauthorized, "invalid signature", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to process settlement", err.Error())
		return
	}

	ack := dto.SettlementAckResponse{
		Processed: result.Processed,
		Reason:    result.Reason,
	}
	if result.Entry != nil {
		ack.EntryID = result.Entry.ID
	}

	writeJSON(w, http.StatusOK, ack)
}
