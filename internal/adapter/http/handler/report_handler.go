package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/gobooks/internal/adapter/http/dto"
	"github.com/iho/gobooks/internal/domain"
)

// ReportService defines the reporting operations used over HTTP.
type ReportService interface {
	PeriodSummary(ctx context.Context, from, to time.Time) (*domain.PeriodSummary, error)
	CheckExpenseConsistency(ctx context.Context, from, to time.Time) (*domain.ExpenseConsistency, error)
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLoss, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)
}

// ReportHandler handles report requests.
type ReportHandler struct {
	reportUC  ReportService
	balanceUC BalanceService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService, balanceUC BalanceService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC, balanceUC: balanceUC}
}

// Summary returns revenue, expenses and profit for the from/to range.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		respondError(w, "invalid date range", err)
		return
	}

	summary, err := h.reportUC.PeriodSummary(r.Context(), from, to)
	if err != nil {
		respondError(w, "failed to build summary", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PeriodSummaryFromDomain(summary))
}

// ExpenseConsistency compares the expenses table with the ledger.
func (h *ReportHandler) ExpenseConsistency(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		respondError(w, "invalid date range", err)
		return
	}

	result, err := h.reportUC.CheckExpenseConsistency(r.Context(), from, to)
	if err != nil {
		respondError(w, "failed to check expense consistency", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseConsistencyFromDomain(result))
}

// TrialBalance lists every account's debit, credit and balance as of as_of.
func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfOrToday(r)
	if err != nil {
		respondError(w, "invalid as_of", err)
		return
	}

	rows, err := h.balanceUC.TrialBalance(r.Context(), asOf)
	if err != nil {
		respondError(w, "failed to build trial balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceFromDomain(asOf, rows))
}

// ProfitAndLoss returns the ledger income statement for the from/to range.
func (h *ReportHandler) ProfitAndLoss(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		respondError(w, "invalid date range", err)
		return
	}

	statement, err := h.reportUC.ProfitAndLoss(r.Context(), from, to)
	if err != nil {
		respondError(w, "failed to build profit and loss", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfitAndLossFromDomain(statement))
}

// BalanceSheet returns assets, liabilities and equity as of as_of.
func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfOrToday(r)
	if err != nil {
		respondError(w, "invalid as_of", err)
		return
	}

	sheet, err := h.reportUC.BalanceSheet(r.Context(), asOf)
	if err != nil {
		respondError(w, "failed to build balance sheet", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromDomain(sheet))
}
