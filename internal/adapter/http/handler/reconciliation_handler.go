package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobooks/internal/adapter/http/dto"
	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/usecase"
)

// ReconciliationService defines the reconciliation operations used over HTTP.
type ReconciliationService interface {
	Reconcile(ctx context.Context, input usecase.ReconcileInput) (string, error)
	ListReconciliations(ctx context.Context, accountID string) ([]*domain.Reconciliation, error)
	CheckLedgerConsistency(ctx context.Context) (*usecase.LedgerConsistency, error)
}

// ReconciliationHandler handles reconciliation and ledger checks.
type ReconciliationHandler struct {
	reconUC ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconUC ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconUC: reconUC}
}

// Reconcile marks statement lines and records a reconciliation snapshot.
func (h *ReconciliationHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req dto.ReconcileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		respondError(w, "invalid reconciliation", err)
		return
	}
	input.ReconciledBy = actorID(r, input.ReconciledBy)

	id, err := h.reconUC.Reconcile(r.Context(), input)
	if err != nil {
		respondError(w, "failed to reconcile", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ReconcileResponse{ReconciliationID: id})
}

// ListByAccount lists the reconciliation snapshots of the account in the path.
func (h *ReconciliationHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	recs, err := h.reconUC.ListReconciliations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "failed to list reconciliations", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reconciliations": dto.ReconciliationsFromDomain(recs)})
}

// CheckLedgerConsistency compares ledger-wide debits and credits. An
// inconsistent ledger is reported with 409.
func (h *ReconciliationHandler) CheckLedgerConsistency(w http.ResponseWriter, r *http.Request) {
	result, err := h.reconUC.CheckLedgerConsistency(r.Context())
	if err != nil {
		respondError(w, "failed to check consistency", err)
		return
	}

	status := http.StatusOK
	if !result.IsConsistent {
		status = http.StatusConflict
	}
	writeJSON(w, status, dto.LedgerConsistencyFromUseCase(result))
}
