package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/postgres/generated"
	"github.com/iho/gobooks/internal/usecase"
)

// BalanceRepository implements usecase.BalanceRepository.
// Balances are aggregated from journal lines on every call.
type BalanceRepository struct {
	queries *generated.Queries
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return newBalanceRepositoryWithDB(pool)
}

func newBalanceRepositoryWithDB(db generated.DBTX) *BalanceRepository {
	return &BalanceRepository{queries: generated.New(db)}
}

// BalanceAsOf returns Σ(debit - credit) of the account's lines dated on or before asOf.
func (r *BalanceRepository) BalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	return balanceAsOf(ctx, r.queries, accountID, asOf)
}

// BalanceAsOfTx is BalanceAsOf inside tx, so it sees the transaction's own writes.
func (r *BalanceRepository) BalanceAsOfTx(ctx context.Context, tx usecase.Transaction, accountID string, asOf time.Time) (decimal.Decimal, error) {
	queries, err := txQueries(tx)
	if err != nil {
		return decimal.Zero, err
	}

	return balanceAsOf(ctx, queries, accountID, asOf)
}

func balanceAsOf(ctx context.Context, queries *generated.Queries, accountID string, asOf time.Time) (decimal.Decimal, error) {
	n, err := queries.AccountBalanceAsOf(ctx, generated.AccountBalanceAsOfParams{
		AccountID: accountID,
		AsOf:      timeToPgDate(asOf),
	})
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(n)
}

// NetDebitBetween returns Σ(debit - credit) of the account's lines dated in [from, to].
func (r *BalanceRepository) NetDebitBetween(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error) {
	n, err := r.queries.AccountNetDebitBetween(ctx, generated.AccountNetDebitBetweenParams{
		AccountID: accountID,
		DateFrom:  timeToPgDate(from),
		DateTo:    timeToPgDate(to),
	})
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(n)
}

// TrialBalance returns every account's debit and credit totals as of asOf, ordered by code.
func (r *BalanceRepository) TrialBalance(ctx context.Context, asOf time.Time) ([]*domain.TrialBalanceRow, error) {
	rows, err := r.queries.TrialBalance(ctx, timeToPgDate(asOf))
	if err != nil {
		return nil, err
	}

	result := make([]*domain.TrialBalanceRow, 0, len(rows))
	for _, row := range rows {
		debit, err := numericToDecimal(row.TotalDebit)
		if err != nil {
			return nil, err
		}
		credit, err := numericToDecimal(row.TotalCredit)
		if err != nil {
			return nil, err
		}

		result = append(result, &domain.TrialBalanceRow{
			AccountID:   row.ID,
			Code:        row.Code,
			Name:        row.Name,
			Type:        domain.AccountType(row.Type),
			TotalDebit:  debit,
			TotalCredit: credit,
			Balance:     debit.Sub(credit),
		})
	}

	return result, nil
}
