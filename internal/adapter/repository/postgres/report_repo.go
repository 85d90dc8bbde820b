package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/postgres/generated"
)

// ReportRepository implements usecase.ReportRepository over the raw
// sales and expenses tables. It never reads journal lines.
type ReportRepository struct {
	queries *generated.Queries
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return newReportRepositoryWithDB(pool)
}

func newReportRepositoryWithDB(db generated.DBTX) *ReportRepository {
	return &ReportRepository{queries: generated.New(db)}
}

// Revenue sums sales created on dates in [from, to].
func (r *ReportRepository) Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	n, err := r.queries.SumSalesBetween(ctx, generated.SumSalesBetweenParams{
		DateFrom: timeToPgDate(from),
		DateTo:   timeToPgDate(to),
	})
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(n)
}

// Expenses sums expenses dated in [from, to].
func (r *ReportRepository) Expenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	n, err := r.queries.SumExpensesBetween(ctx, generated.SumExpensesBetweenParams{
		DateFrom: timeToPgDate(from),
		DateTo:   timeToPgDate(to),
	})
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(n)
}

// ExpensesByCategory groups expenses dated in [from, to] by category name,
// largest first.
func (r *ReportRepository) ExpensesByCategory(ctx context.Context, from, to time.Time) ([]domain.CategoryTotal, error) {
	rows, err := r.queries.SumExpensesByCategory(ctx, generated.SumExpensesByCategoryParams{
		DateFrom: timeToPgDate(from),
		DateTo:   timeToPgDate(to),
	})
	if err != nil {
		return nil, err
	}

	totals := make([]domain.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		total, err := numericToDecimal(row.Total)
		if err != nil {
			return nil, err
		}
		totals = append(totals, domain.CategoryTotal{Category: row.Category, Total: total})
	}

	return totals, nil
}
