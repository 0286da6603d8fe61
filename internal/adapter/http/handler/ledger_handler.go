package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/iho/bookkeeper/internal/adapter/http/dto"
	"github.com/iho/bookkeeper/internal/usecase"
)

// ConsistencyService defines the behavior needed by LedgerHandler.
type ConsistencyService interface {
	CheckConsistency(ctx context.Context) (bool, error)
}

// LedgerHandler handles ledger-wide HTTP requests.
type LedgerHandler struct {
	svc ConsistencyService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(svc ConsistencyService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

// Consistency reports whether the ledger is balanced.
func (h *LedgerHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	consistent, err := h.svc.CheckConsistency(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrInconsistentLedger) {
			writeJSON(w, http.StatusConflict, dto.ConsistencyResponse{
				Consistent: false,
				Status:     err.Error(),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "consistency check failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyResponse{
		Consistent: consistent,
		Status:     "balanced",
	})
}
