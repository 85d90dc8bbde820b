package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
)

// BalanceUseCase computes account balances from posted journal lines.
type BalanceUseCase struct {
	accountRepo AccountRepository
	balanceRepo BalanceRepository
	logger      zerolog.Logger
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(accountRepo AccountRepository, balanceRepo BalanceRepository, logger zerolog.Logger) *BalanceUseCase {
	return &BalanceUseCase{
		accountRepo: accountRepo,
		balanceRepo: balanceRepo,
		logger:      logger.With().Str("component", "balances").Logger(),
	}
}

// AccountBalance returns Σ(debit - credit) over the account's lines whose
// entry is dated on or before asOf. An account without lines has balance 0.
// A zero asOf means today.
func (uc *BalanceUseCase) AccountBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	asOf = dateOrToday(asOf)

	balance, err := uc.balanceRepo.BalanceAsOf(ctx, accountID, asOf)
	if err != nil {
		return decimal.Zero, storageError(uc.logger, "account_balance", err, map[string]any{
			"account_id": accountID,
			"as_of":      asOf.Format(domain.DateLayout),
		})
	}
	return balance, nil
}

// AccountBalanceByCode looks the account up by code and returns its balance.
// Unknown codes yield domain.ErrAccountNotFound; accounts are never created here.
func (uc *BalanceUseCase) AccountBalanceByCode(ctx context.Context, code string, asOf time.Time) (decimal.Decimal, error) {
	code, err := domain.NormalizeAccountCode(code)
	if err != nil {
		return decimal.Zero, err
	}

	account, err := uc.accountRepo.GetByCode(ctx, code)
	if err != nil {
		return decimal.Zero, storageError(uc.logger, "account_balance_by_code", err, map[string]any{"code": code})
	}

	return uc.AccountBalance(ctx, account.ID, asOf)
}

// TrialBalance returns debit and credit totals and the balance of every
// account as of the given date, ordered by code.
func (uc *BalanceUseCase) TrialBalance(ctx context.Context, asOf time.Time) ([]*domain.TrialBalanceRow, error) {
	asOf = dateOrToday(asOf)

	rows, err := uc.balanceRepo.TrialBalance(ctx, asOf)
	if err != nil {
		return nil, storageError(uc.logger, "trial_balance", err, map[string]any{"as_of": asOf.Format(domain.DateLayout)})
	}
	return rows, nil
}

func dateOrToday(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	return domain.NormalizeDate(t)
}
