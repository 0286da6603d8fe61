package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/bookkeeper/internal/adapter/http/dto"
	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	PostEntry(ctx context.Context, input usecase.PostEntryInput) (domain.Entry, error)
	ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]domain.Entry, int, error)
}

// EntryHandler handles entry-related HTTP requests.
type EntryHandler struct {
	svc EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(svc EntryService) *EntryHandler {
	return &EntryHandler{svc: svc}
}

// Post posts a new double-entry posting.
func (h *EntryHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req dto.PostEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.svc.PostEntry(r.Context(), req.ToServiceInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to post entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// List lists posted entries in posting order.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, total, err := h.svc.ListEntries(r.Context(), usecase.ListEntriesInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(total),
	})
}
