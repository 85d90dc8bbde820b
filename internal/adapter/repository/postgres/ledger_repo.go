package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return newLedgerRepositoryWithDB(pool)
}

func newLedgerRepositoryWithDB(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// CheckConsistency returns the debit and credit totals of every journal line.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (totalDebits decimal.Decimal, totalCredits decimal.Decimal, err error) {
	result, err := r.queries.LedgerTotals(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	totalDebits, err = numericToDecimal(result.TotalDebits)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	totalCredits, err = numericToDecimal(result.TotalCredits)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return totalDebits, totalCredits, nil
}

// UnbalancedEntries returns the ids of entries whose lines differ by more
// than tolerance, at most limit of them.
func (r *LedgerRepository) UnbalancedEntries(ctx context.Context, tolerance decimal.Decimal, limit int) ([]string, error) {
	ids, err := r.queries.UnbalancedEntries(ctx, generated.UnbalancedEntriesParams{
		Tolerance: decimalToNumeric(tolerance),
		LimitRows: int32(limit),
	})
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
