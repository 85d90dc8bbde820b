package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gobooks/internal/adapter/http/dto"
	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/usecase"
)

type reconciliationServiceStub struct {
	reconcileFn   func(ctx context.Context, input usecase.ReconcileInput) (string, error)
	listFn        func(ctx context.Context, accountID string) ([]*domain.Reconciliation, error)
	consistencyFn func(ctx context.Context) (*usecase.LedgerConsistency, error)
}

func (s *reconciliationServiceStub) Reconcile(ctx context.Context, input usecase.ReconcileInput) (string, error) {
	return s.reconcileFn(ctx, input)
}

func (s *reconciliationServiceStub) ListReconciliations(ctx context.Context, accountID string) ([]*domain.Reconciliation, error) {
	return s.listFn(ctx, accountID)
}

func (s *reconciliationServiceStub) CheckLedgerConsistency(ctx context.Context) (*usecase.LedgerConsistency, error) {
	return s.consistencyFn(ctx)
}

type reportServiceStub struct {
	summaryFn     func(ctx context.Context, from, to time.Time) (*domain.PeriodSummary, error)
	consistencyFn func(ctx context.Context, from, to time.Time) (*domain.ExpenseConsistency, error)
	profitFn      func(ctx context.Context, from, to time.Time) (*domain.ProfitAndLoss, error)
	sheetFn       func(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)
}

func (s *reportServiceStub) PeriodSummary(ctx context.Context, from, to time.Time) (*domain.PeriodSummary, error) {
	return s.summaryFn(ctx, from, to)
}

func (s *reportServiceStub) CheckExpenseConsistency(ctx context.Context, from, to time.Time) (*domain.ExpenseConsistency, error) {
	return s.consistencyFn(ctx, from, to)
}

func (s *reportServiceStub) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLoss, error) {
	return s.profitFn(ctx, from, to)
}

func (s *reportServiceStub) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	return s.sheetFn(ctx, asOf)
}

func TestReconciliationHandler_Reconcile(t *testing.T) {
	var captured usecase.ReconcileInput
	h := NewReconciliationHandler(&reconciliationServiceStub{
		reconcileFn: func(ctx context.Context, input usecase.ReconcileInput) (string, error) {
			captured = input
			return "rec-1", nil
		},
	})

	body := `{"account_id":"acc-cash","date":"2026-10-15","statement_balance":"760","line_ids":["l1","l2"],"reconciled_by":"auditor"}`
	rec := httptest.NewRecorder()
	h.Reconcile(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reconciliations", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"l1", "l2"}, captured.LineIDs)
	assert.Equal(t, "auditor", captured.ReconciledBy)

	var resp dto.ReconcileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rec-1", resp.ReconciliationID)
}

func TestReconciliationHandler_ListByAccount(t *testing.T) {
	h := NewReconciliationHandler(&reconciliationServiceStub{
		listFn: func(ctx context.Context, accountID string) ([]*domain.Reconciliation, error) {
			return []*domain.Reconciliation{{
				ID:               "rec-1",
				AccountID:        accountID,
				StatementBalance: decimal.RequireFromString("760"),
				BookBalance:      decimal.RequireFromString("750"),
			}}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.ListByAccount(rec, setChiURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/accounts/acc-cash/reconciliations", nil), "id", "acc-cash"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Reconciliations []dto.ReconciliationResponse `json:"reconciliations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Reconciliations, 1)
	assert.True(t, resp.Reconciliations[0].Variance.Equal(decimal.RequireFromString("10")))
}

func TestReconciliationHandler_CheckLedgerConsistency(t *testing.T) {
	result := &usecase.LedgerConsistency{IsConsistent: true}
	h := NewReconciliationHandler(&reconciliationServiceStub{
		consistencyFn: func(ctx context.Context) (*usecase.LedgerConsistency, error) { return result, nil },
	})

	rec := httptest.NewRecorder()
	h.CheckLedgerConsistency(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ledger/consistency", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	result = &usecase.LedgerConsistency{
		TotalDebits:       decimal.RequireFromString("10"),
		TotalCredits:      decimal.RequireFromString("9.5"),
		Difference:        decimal.RequireFromString("0.5"),
		UnbalancedEntries: []string{"je-7"},
	}
	rec = httptest.NewRecorder()
	h.CheckLedgerConsistency(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ledger/consistency", nil))
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp dto.LedgerConsistencyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "inconsistent", resp.Status)
	assert.Equal(t, []string{"je-7"}, resp.UnbalancedEntries)
}

func TestReportHandler_Summary(t *testing.T) {
	h := NewReportHandler(&reportServiceStub{
		summaryFn: func(ctx context.Context, from, to time.Time) (*domain.PeriodSummary, error) {
			return domain.NewPeriodSummary(from, to, decimal.RequireFromString("3000"), decimal.RequireFromString("1000"), nil), nil
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.Summary(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary?from=2026-10-01&to=2026-10-31", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.PeriodSummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-10-01", resp.DateFrom)
	assert.True(t, resp.Profit.Equal(decimal.RequireFromString("2000")))
	assert.True(t, resp.MarginPct.Equal(decimal.RequireFromString("66.67")))
}

func TestReportHandler_Summary_Errors(t *testing.T) {
	h := NewReportHandler(&reportServiceStub{
		summaryFn: func(ctx context.Context, from, to time.Time) (*domain.PeriodSummary, error) {
			if from.After(to) {
				return nil, domain.ErrInvalidDateRange
			}
			return nil, domain.IOFailure("period_summary", errors.New("relation \"sales\" does not exist"))
		},
	}, nil)

	tests := []struct {
		query  string
		status int
	}{
		{"", http.StatusUnprocessableEntity},
		{"?from=2026-10-31&to=2026-10-01", http.StatusUnprocessableEntity},
		{"?from=2026-10-01&to=2026-10-31", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.Summary(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary"+tt.query, nil))
		assert.Equal(t, tt.status, rec.Code, "query %q", tt.query)
	}
}

func TestReportHandler_ExpenseConsistency(t *testing.T) {
	h := NewReportHandler(&reportServiceStub{
		consistencyFn: func(ctx context.Context, from, to time.Time) (*domain.ExpenseConsistency, error) {
			return domain.NewExpenseConsistency(from, to, decimal.RequireFromString("200"), decimal.RequireFromString("215")), nil
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.ExpenseConsistency(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/expense-consistency?from=2026-10-01&to=2026-10-31", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.ExpenseConsistencyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.IsConsistent)
	assert.True(t, resp.Difference.Equal(decimal.RequireFromString("-15")))
}

func TestReportHandler_TrialBalance(t *testing.T) {
	h := NewReportHandler(nil, &balanceServiceStub{
		trialBalanceFn: func(ctx context.Context, asOf time.Time) ([]*domain.TrialBalanceRow, error) {
			return []*domain.TrialBalanceRow{
				{Code: "1000", TotalDebit: decimal.RequireFromString("1000"), TotalCredit: decimal.Zero, Balance: decimal.RequireFromString("1000")},
				{Code: "4000", TotalDebit: decimal.Zero, TotalCredit: decimal.RequireFromString("1000"), Balance: decimal.RequireFromString("-1000")},
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.TrialBalance(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/trial-balance?as_of=2026-10-31", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.TrialBalanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-10-31", resp.AsOf)
	assert.Len(t, resp.Rows, 2)
	assert.True(t, resp.TotalDebits.Equal(resp.TotalCredits))
}

func TestHealthHandler(t *testing.T) {
	healthy := NewHealthHandlerWithChecks(HealthCheck{Name: "postgres", Ping: func(ctx context.Context) error { return nil }})

	rec := httptest.NewRecorder()
	healthy.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"postgres":"ok"`)

	broken := NewHealthHandlerWithChecks(
		HealthCheck{Name: "postgres", Ping: func(ctx context.Context) error { return nil }},
		HealthCheck{Name: "redis", Ping: func(ctx context.Context) error { return errors.New("connection refused") }},
	)
	rec = httptest.NewRecorder()
	broken.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis unhealthy")

	rec = httptest.NewRecorder()
	broken.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReportHandler_ProfitAndLoss(t *testing.T) {
	var gotFrom, gotTo time.Time
	h := NewReportHandler(&reportServiceStub{
		profitFn: func(ctx context.Context, from, to time.Time) (*domain.ProfitAndLoss, error) {
			gotFrom, gotTo = from, to
			return domain.NewProfitAndLoss(from, to, nil, []*domain.TrialBalanceRow{
				{AccountID: "rev", Code: "4000", Type: domain.AccountTypeRevenue, Balance: decimal.RequireFromString("-90")},
				{AccountID: "exp", Code: "6000", Type: domain.AccountTypeExpense, Balance: decimal.RequireFromString("30")},
			}), nil
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.ProfitAndLoss(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/profit-and-loss?from=2026-10-01&to=2026-10-31", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, gotFrom.Day())
	assert.Equal(t, 31, gotTo.Day())

	var resp dto.ProfitAndLossResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.NetProfit.Equal(decimal.RequireFromString("60")))
	assert.Len(t, resp.Lines, 2)

	rec = httptest.NewRecorder()
	h.ProfitAndLoss(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/profit-and-loss?from=2026-10-01", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReportHandler_BalanceSheet(t *testing.T) {
	h := NewReportHandler(&reportServiceStub{
		sheetFn: func(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
			if asOf.Format(domain.DateLayout) != "2026-10-31" {
				return nil, errors.New("unexpected as_of")
			}
			return domain.NewBalanceSheet(asOf, []*domain.TrialBalanceRow{
				{AccountID: "cash", Code: "1000", Type: domain.AccountTypeAsset, Balance: decimal.RequireFromString("1500")},
				{AccountID: "own", Code: "3000", Type: domain.AccountTypeEquity, Balance: decimal.RequireFromString("-1500")},
			}), nil
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.BalanceSheet(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/balance-sheet?as_of=2026-10-31", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.BalanceSheetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Assets.Equal(decimal.RequireFromString("1500")))
	assert.True(t, resp.Equity.Equal(decimal.RequireFromString("1500")))
	assert.True(t, resp.Difference.IsZero())

	h = NewReportHandler(&reportServiceStub{
		sheetFn: func(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
			return nil, domain.IOFailure("balance_sheet", errors.New("connection reset"))
		},
	}, nil)
	rec = httptest.NewRecorder()
	h.BalanceSheet(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/balance-sheet", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
