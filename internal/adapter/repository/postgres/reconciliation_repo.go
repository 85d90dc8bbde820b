package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/postgres/generated"
	"github.com/iho/gobooks/internal/usecase"
)

// ReconciliationRepository implements usecase.ReconciliationRepository.
type ReconciliationRepository struct {
	queries *generated.Queries
}

// NewReconciliationRepository creates a new ReconciliationRepository.
func NewReconciliationRepository(pool *pgxpool.Pool) *ReconciliationRepository {
	return newReconciliationRepositoryWithDB(pool)
}

func newReconciliationRepositoryWithDB(db generated.DBTX) *ReconciliationRepository {
	return &ReconciliationRepository{queries: generated.New(db)}
}

// MarkLinesReconciled flags the account's unreconciled lines among lineIDs.
// Lines that are unknown, belong to another account or are already
// reconciled are left untouched and omitted from the result.
func (r *ReconciliationRepository) MarkLinesReconciled(ctx context.Context, tx usecase.Transaction, accountID string, lineIDs []string, date time.Time) ([]string, error) {
	if len(lineIDs) == 0 {
		return nil, nil
	}

	queries, err := txQueries(tx)
	if err != nil {
		return nil, err
	}

	return queries.MarkLinesReconciled(ctx, generated.MarkLinesReconciledParams{
		ReconciledDate: timeToPgDate(date),
		AccountID:      accountID,
		LineIds:        lineIDs,
	})
}

// Create inserts a reconciliation snapshot.
func (r *ReconciliationRepository) Create(ctx context.Context, tx usecase.Transaction, rec *domain.Reconciliation) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	return queries.CreateReconciliation(ctx, generated.CreateReconciliationParams{
		ID:                 rec.ID,
		AccountID:          rec.AccountID,
		ReconciliationDate: timeToPgDate(rec.ReconciliationDate),
		StatementBalance:   decimalToNumeric(rec.StatementBalance),
		BookBalance:        decimalToNumeric(rec.BookBalance),
		ReconciledBy:       rec.ReconciledBy,
		CreatedAt:          timeToPgTimestamptz(rec.CreatedAt),
	})
}

// ListByAccount returns the account's snapshots, newest first.
func (r *ReconciliationRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Reconciliation, error) {
	rows, err := r.queries.ListReconciliationsByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	recs := make([]*domain.Reconciliation, 0, len(rows))
	for _, row := range rows {
		statement, err := numericToDecimal(row.StatementBalance)
		if err != nil {
			return nil, err
		}
		book, err := numericToDecimal(row.BookBalance)
		if err != nil {
			return nil, err
		}

		recs = append(recs, &domain.Reconciliation{
			ID:                 row.ID,
			AccountID:          row.AccountID,
			ReconciliationDate: pgDateToTime(row.ReconciliationDate),
			StatementBalance:   statement,
			BookBalance:        book,
			ReconciledBy:       row.ReconciledBy,
			CreatedAt:          row.CreatedAt.Time,
		})
	}

	return recs, nil
}
