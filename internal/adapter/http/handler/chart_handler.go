package handler

import (
	"context"
	"net/http"

	"github.com/iho/bookkeeper/internal/usecase"
)

// ChartService defines the behavior needed by ChartHandler.
type ChartService interface {
	Tree(ctx context.Context) (*usecase.ChartNode, error)
}

// ChartHandler serves the chart-of-accounts tree.
type ChartHandler struct {
	svc ChartService
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(svc ChartService) *ChartHandler {
	return &ChartHandler{svc: svc}
}

// Get returns the chart tree with consolidated balances.
func (h *ChartHandler) Get(w http.ResponseWriter, r *http.Request) {
	tree, err := h.svc.Tree(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build chart", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, tree)
}
