package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/postgres/generated"
	"github.com/iho/gobooks/internal/usecase"
)

const (
	pgErrUniqueViolation         = "23505"
	saleReferenceUniqueIndexName = "uq_journal_entries_sale_reference"
)

// JournalRepository implements usecase.JournalRepository.
type JournalRepository struct {
	queries *generated.Queries
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return newJournalRepositoryWithDB(pool)
}

func newJournalRepositoryWithDB(db generated.DBTX) *JournalRepository {
	return &JournalRepository{queries: generated.New(db)}
}

// CreateEntry writes the entry header.
func (r *JournalRepository) CreateEntry(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	err = queries.CreateJournalEntry(ctx, generated.CreateJournalEntryParams{
		ID:          entry.ID,
		Reference:   entry.Reference,
		Description: entry.Description,
		EntryDate:   timeToPgDate(entry.EntryDate),
		TotalAmount: decimalToNumeric(entry.TotalAmount),
		CreatedBy:   entry.CreatedBy,
		CreatedAt:   timeToPgTimestamptz(entry.CreatedAt),
	})
	if isSaleReferenceConflict(err) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateReference, entry.Reference)
	}
	return err
}

// isSaleReferenceConflict reports whether err is a second posting of a sale
// or refund reference.
func isSaleReferenceConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgErrUniqueViolation &&
		pgErr.ConstraintName == saleReferenceUniqueIndexName
}

// CreateLines writes the lines of an entry in order.
func (r *JournalRepository) CreateLines(ctx context.Context, tx usecase.Transaction, lines []*domain.JournalLine) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	for _, line := range lines {
		err := queries.CreateJournalLine(ctx, generated.CreateJournalLineParams{
			ID:             line.ID,
			JournalEntryID: line.JournalEntryID,
			AccountID:      line.AccountID,
			DebitAmount:    decimalToNumeric(line.DebitAmount),
			CreditAmount:   decimalToNumeric(line.CreditAmount),
			Description:    line.Description,
		})
		if err != nil {
			return fmt.Errorf("line %s: %w", line.ID, err)
		}
	}

	return nil
}

// GetByID retrieves an entry with its lines.
func (r *JournalRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	row, err := r.queries.GetJournalEntry(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return r.withLines(ctx, row)
}

// GetByReference retrieves the oldest entry posted under ref.
func (r *JournalRepository) GetByReference(ctx context.Context, ref string) (*domain.JournalEntry, error) {
	row, err := r.queries.GetJournalEntryByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return r.withLines(ctx, row)
}

func (r *JournalRepository) withLines(ctx context.Context, row generated.JournalEntry) (*domain.JournalEntry, error) {
	total, err := numericToDecimal(row.TotalAmount)
	if err != nil {
		return nil, err
	}

	entry := &domain.JournalEntry{
		ID:          row.ID,
		Reference:   row.Reference,
		Description: row.Description,
		EntryDate:   pgDateToTime(row.EntryDate),
		TotalAmount: total,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt.Time,
	}

	lineRows, err := r.queries.ListJournalLinesByEntry(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	entry.Lines = make([]*domain.JournalLine, 0, len(lineRows))
	for _, lr := range lineRows {
		line, err := rowToLine(generated.ListJournalLinesByAccountRow(lr))
		if err != nil {
			return nil, err
		}
		entry.Lines = append(entry.Lines, line)
	}

	return entry, nil
}

// ListLinesByAccount lists the lines posted to an account ordered by entry date.
func (r *JournalRepository) ListLinesByAccount(ctx context.Context, accountID string, unreconciledOnly bool, limit, offset int) ([]*domain.JournalLine, error) {
	rows, err := r.queries.ListJournalLinesByAccount(ctx, generated.ListJournalLinesByAccountParams{
		AccountID:        accountID,
		UnreconciledOnly: unreconciledOnly,
		LimitRows:        int32(limit),
		OffsetRows:       int32(offset),
	})
	if err != nil {
		return nil, err
	}

	lines := make([]*domain.JournalLine, 0, len(rows))
	for _, row := range rows {
		line, err := rowToLine(row)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func rowToLine(row generated.ListJournalLinesByAccountRow) (*domain.JournalLine, error) {
	debit, err := numericToDecimal(row.DebitAmount)
	if err != nil {
		return nil, err
	}

	credit, err := numericToDecimal(row.CreditAmount)
	if err != nil {
		return nil, err
	}

	return &domain.JournalLine{
		ID:             row.ID,
		JournalEntryID: row.JournalEntryID,
		AccountID:      row.AccountID,
		AccountCode:    row.AccountCode,
		DebitAmount:    debit,
		CreditAmount:   credit,
		Description:    row.Description,
		IsReconciled:   row.IsReconciled,
		ReconciledDate: pgDateToTimePtr(row.ReconciledDate),
		EntryDate:      pgDateToTime(row.EntryDate),
	}, nil
}
