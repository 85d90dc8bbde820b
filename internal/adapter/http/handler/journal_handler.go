package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobooks/internal/adapter/http/dto"
	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/usecase"
)

// JournalService defines the journal operations used over HTTP.
type JournalService interface {
	PostManualEntry(ctx context.Context, input usecase.PostManualEntryInput) (string, error)
	GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error)
	ReverseEntry(ctx context.Context, input usecase.ReverseEntryInput) (string, error)
	ListAccountLines(ctx context.Context, input usecase.ListAccountLinesInput) ([]*domain.JournalLine, error)
	RecordExpense(ctx context.Context, input usecase.RecordExpenseInput) (*usecase.RecordExpenseResult, error)
	PostSimpleExpense(ctx context.Context, input usecase.PostSimpleExpenseInput) (string, error)
}

// JournalHandler handles journal entry and expense requests.
type JournalHandler struct {
	journalUC JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalUC JournalService) *JournalHandler {
	return &JournalHandler{journalUC: journalUC}
}

// Post posts a manual journal entry.
func (h *JournalHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req dto.PostEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		respondError(w, "invalid journal entry", err)
		return
	}
	input.PostedBy = actorID(r, input.PostedBy)

	id, err := h.journalUC.PostManualEntry(r.Context(), input)
	if err != nil {
		respondError(w, "invalid journal entry", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PostedEntryResponse{JournalEntryID: id})
}

// Get returns an entry with its lines.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.journalUC.GetEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "failed to get journal entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalEntryFromDomain(entry))
}

// Reverse posts an entry offsetting the one in the path.
func (h *JournalHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	var req dto.ReverseEntryRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid reversal", err)
		return
	}
	input.PostedBy = actorID(r, input.PostedBy)

	id, err := h.journalUC.ReverseEntry(r.Context(), input)
	if err != nil {
		respondError(w, "failed to reverse journal entry", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PostedEntryResponse{JournalEntryID: id})
}

// ListAccountLines lists the lines posted to the account in the path.
func (h *JournalHandler) ListAccountLines(w http.ResponseWriter, r *http.Request) {
	lines, err := h.journalUC.ListAccountLines(r.Context(), usecase.ListAccountLinesInput{
		AccountID:        chi.URLParam(r, "id"),
		UnreconciledOnly: parseBoolQuery(r, "unreconciled"),
		Limit:            parseIntQuery(r, "limit", 50),
		Offset:           parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		respondError(w, "failed to list lines", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"lines": dto.JournalLinesFromDomain(lines)})
}

// RecordExpense stores a raw expense and its journal entry together.
func (h *JournalHandler) RecordExpense(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		respondError(w, "invalid expense", err)
		return
	}
	input.RecordedBy = actorID(r, input.RecordedBy)

	result, err := h.journalUC.RecordExpense(r.Context(), input)
	if err != nil {
		respondError(w, "invalid expense", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecordExpenseResponse{
		ExpenseID:      result.ExpenseID,
		JournalEntryID: result.JournalEntryID,
	})
}

// PostExpense posts the two-line expense entry without a raw expense row.
func (h *JournalHandler) PostExpense(w http.ResponseWriter, r *http.Request) {
	var req dto.PostExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		respondError(w, "invalid expense", err)
		return
	}
	input.PostedBy = actorID(r, input.PostedBy)

	id, err := h.journalUC.PostSimpleExpense(r.Context(), input)
	if err != nil {
		respondError(w, "invalid expense", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PostedEntryResponse{JournalEntryID: id})
}
