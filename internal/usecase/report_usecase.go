package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
)

// ReportUseCase summarizes operational data for management reports.
type ReportUseCase struct {
	reportRepo  ReportRepository
	accountRepo AccountRepository
	balanceRepo BalanceRepository
	logger      zerolog.Logger
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	reportRepo ReportRepository,
	accountRepo AccountRepository,
	balanceRepo BalanceRepository,
	logger zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:  reportRepo,
		accountRepo: accountRepo,
		balanceRepo: balanceRepo,
		logger:      logger.With().Str("component", "reports").Logger(),
	}
}

// PeriodSummary reports revenue, expenses, profit and margin for the
// inclusive date range. It reads the raw sales and expenses tables, not
// the ledger.
func (uc *ReportUseCase) PeriodSummary(ctx context.Context, from, to time.Time) (*domain.PeriodSummary, error) {
	from, to = domain.NormalizeDate(from), domain.NormalizeDate(to)
	if err := domain.ValidateDateRange(from, to); err != nil {
		return nil, err
	}
	fields := rangeFields(from, to)

	revenue, err := uc.reportRepo.Revenue(ctx, from, to)
	if err != nil {
		return nil, storageError(uc.logger, "period_summary", err, fields)
	}

	expenses, err := uc.reportRepo.Expenses(ctx, from, to)
	if err != nil {
		return nil, storageError(uc.logger, "period_summary", err, fields)
	}

	byCategory, err := uc.reportRepo.ExpensesByCategory(ctx, from, to)
	if err != nil {
		return nil, storageError(uc.logger, "period_summary", err, fields)
	}

	return domain.NewPeriodSummary(from, to, revenue, expenses, byCategory), nil
}

// CheckExpenseConsistency compares the raw expenses table with the net
// debit posted to the operating expense account over the same range.
func (uc *ReportUseCase) CheckExpenseConsistency(ctx context.Context, from, to time.Time) (*domain.ExpenseConsistency, error) {
	from, to = domain.NormalizeDate(from), domain.NormalizeDate(to)
	if err := domain.ValidateDateRange(from, to); err != nil {
		return nil, err
	}
	fields := rangeFields(from, to)

	rawTotal, err := uc.reportRepo.Expenses(ctx, from, to)
	if err != nil {
		return nil, storageError(uc.logger, "expense_consistency", err, fields)
	}

	ledgerTotal := decimal.Zero
	account, err := uc.accountRepo.GetByCode(ctx, domain.AccountCodeOperatingExpense)
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		// Nothing has been posted to the expense account yet.
	case err != nil:
		return nil, storageError(uc.logger, "expense_consistency", err, fields)
	default:
		ledgerTotal, err = uc.balanceRepo.NetDebitBetween(ctx, account.ID, from, to)
		if err != nil {
			return nil, storageError(uc.logger, "expense_consistency", err, fields)
		}
	}

	result := domain.NewExpenseConsistency(from, to, rawTotal, ledgerTotal)
	if !result.IsConsistent {
		uc.logger.Warn().
			Str("raw_total", rawTotal.String()).
			Str("ledger_total", ledgerTotal.String()).
			Fields(fields).
			Msg("expense table and ledger disagree")
	}
	return result, nil
}

func rangeFields(from, to time.Time) map[string]any {
	return map[string]any{
		"date_from": from.Format(domain.DateLayout),
		"date_to":   to.Format(domain.DateLayout),
	}
}

// ProfitAndLoss reports revenue and expense account movement over the
// inclusive date range, read from the ledger.
func (uc *ReportUseCase) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLoss, error) {
	from, to = domain.NormalizeDate(from), domain.NormalizeDate(to)
	if err := domain.ValidateDateRange(from, to); err != nil {
		return nil, err
	}
	fields := rangeFields(from, to)

	opening, err := uc.balanceRepo.TrialBalance(ctx, from.AddDate(0, 0, -1))
	if err != nil {
		return nil, storageError(uc.logger, "profit_and_loss", err, fields)
	}

	closing, err := uc.balanceRepo.TrialBalance(ctx, to)
	if err != nil {
		return nil, storageError(uc.logger, "profit_and_loss", err, fields)
	}

	return domain.NewProfitAndLoss(from, to, opening, closing), nil
}

// BalanceSheet reports asset, liability and equity balances as of a date.
// Undistributed profit is shown as net income inside equity.
func (uc *ReportUseCase) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	asOf = domain.NormalizeDate(asOf)

	rows, err := uc.balanceRepo.TrialBalance(ctx, asOf)
	if err != nil {
		return nil, storageError(uc.logger, "balance_sheet", err, map[string]any{"as_of": asOf.Format(domain.DateLayout)})
	}

	sheet := domain.NewBalanceSheet(asOf, rows)
	if !sheet.Difference.Abs().LessThanOrEqual(domain.BalanceTolerance) {
		uc.logger.Warn().
			Str("as_of", asOf.Format(domain.DateLayout)).
			Str("difference", sheet.Difference.String()).
			Msg("balance sheet does not balance")
	}
	return sheet, nil
}
