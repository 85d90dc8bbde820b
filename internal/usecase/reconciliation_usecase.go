package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/metrics"
)

// ReconciliationUseCase handles statement reconciliation and ledger checks.
type ReconciliationUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	reconRepo   ReconciliationRepository
	balanceRepo BalanceRepository
	ledgerRepo  LedgerRepository
	idGen       IDGenerator
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	reconRepo ReconciliationRepository,
	balanceRepo BalanceRepository,
	ledgerRepo LedgerRepository,
	idGen IDGenerator,
	logger zerolog.Logger,
	metrics *metrics.Metrics,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		reconRepo:   reconRepo,
		balanceRepo: balanceRepo,
		ledgerRepo:  ledgerRepo,
		idGen:       idGen,
		logger:      logger.With().Str("component", "reconciliation").Logger(),
		metrics:     metrics,
	}
}

// ReconcileInput represents a statement reconciliation request.
type ReconcileInput struct {
	AccountID        string
	Date             time.Time
	StatementBalance decimal.Decimal
	LineIDs          []string
	ReconciledBy     string
}

// Reconcile marks the given lines of an account as reconciled, computes the
// book balance as of Date and records a snapshot, all in one transaction.
// A variance between statement and book balance is recorded, not rejected.
// Line ids that are unknown, belong to another account or are already
// reconciled are skipped with a warning.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, input ReconcileInput) (string, error) {
	if err := domain.ValidateActor(input.ReconciledBy); err != nil {
		return "", err
	}

	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return "", storageError(uc.logger, "reconcile", err, map[string]any{"account_id": input.AccountID})
	}

	date := dateOrToday(input.Date)
	lineIDs := uniqueIDs(input.LineIDs)
	fields := map[string]any{
		"account_id": input.AccountID,
		"date":       date.Format(domain.DateLayout),
		"lines":      len(lineIDs),
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return "", storageError(uc.logger, "reconcile", err, fields)
	}
	defer tx.Rollback(txCtx)

	marked, err := uc.reconRepo.MarkLinesReconciled(txCtx, tx, input.AccountID, lineIDs, date)
	if err != nil {
		return "", storageError(uc.logger, "reconcile", err, fields)
	}

	if skipped := missingIDs(lineIDs, marked); len(skipped) > 0 {
		uc.logger.Warn().
			Str("account_id", input.AccountID).
			Strs("line_ids", skipped).
			Msg("lines not found or already reconciled")
	}

	// The book balance is read after marking, inside the same transaction.
	bookBalance, err := uc.balanceRepo.BalanceAsOfTx(txCtx, tx, input.AccountID, date)
	if err != nil {
		return "", storageError(uc.logger, "reconcile", err, fields)
	}

	rec := &domain.Reconciliation{
		ID:                 uc.idGen.Generate(),
		AccountID:          input.AccountID,
		ReconciliationDate: date,
		StatementBalance:   input.StatementBalance,
		BookBalance:        bookBalance,
		ReconciledBy:       input.ReconciledBy,
		CreatedAt:          time.Now().UTC(),
	}
	if err := uc.reconRepo.Create(txCtx, tx, rec); err != nil {
		return "", storageError(uc.logger, "reconcile", err, fields)
	}

	if err := tx.Commit(txCtx); err != nil {
		return "", storageError(uc.logger, "reconcile", err, fields)
	}

	uc.logger.Info().
		Str("reconciliation_id", rec.ID).
		Str("account_id", rec.AccountID).
		Str("statement_balance", rec.StatementBalance.String()).
		Str("book_balance", rec.BookBalance.String()).
		Int("lines_marked", len(marked)).
		Bool("matched", rec.IsMatched()).
		Msg("account reconciled")

	if uc.metrics != nil {
		uc.metrics.Reconciliations.Inc()
		uc.metrics.LinesReconciled.Add(float64(len(marked)))
		uc.metrics.ReconciliationVariance.Observe(rec.Variance().Abs().InexactFloat64())
	}

	return rec.ID, nil
}

// ListReconciliations returns the snapshots recorded for an account.
func (uc *ReconciliationUseCase) ListReconciliations(ctx context.Context, accountID string) ([]*domain.Reconciliation, error) {
	recs, err := uc.reconRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, storageError(uc.logger, "list_reconciliations", err, map[string]any{"account_id": accountID})
	}
	return recs, nil
}

// LedgerConsistency is the result of a ledger-wide debit/credit check.
// Difference is informational: entries may each be off by up to
// domain.BalanceTolerance, so only UnbalancedEntries decides consistency.
type LedgerConsistency struct {
	TotalDebits       decimal.Decimal
	TotalCredits      decimal.Decimal
	Difference        decimal.Decimal
	UnbalancedEntries []string
	IsConsistent      bool
	CheckedAt         time.Time
}

// CheckLedgerConsistency verifies double-entry bookkeeping consistency.
// The ledger is consistent when no single entry is out of balance by more
// than domain.BalanceTolerance.
func (uc *ReconciliationUseCase) CheckLedgerConsistency(ctx context.Context) (*LedgerConsistency, error) {
	totalDebits, totalCredits, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return nil, storageError(uc.logger, "check_ledger_consistency", err, nil)
	}

	unbalanced, err := uc.ledgerRepo.UnbalancedEntries(ctx, domain.BalanceTolerance, MaxReportedUnbalancedEntries)
	if err != nil {
		return nil, storageError(uc.logger, "check_ledger_consistency", err, nil)
	}

	result := &LedgerConsistency{
		TotalDebits:       totalDebits,
		TotalCredits:      totalCredits,
		Difference:        totalDebits.Sub(totalCredits),
		UnbalancedEntries: unbalanced,
		IsConsistent:      len(unbalanced) == 0,
		CheckedAt:         time.Now().UTC(),
	}

	if !result.IsConsistent {
		uc.logger.Error().
			Str("debits", totalDebits.String()).
			Str("credits", totalCredits.String()).
			Str("difference", result.Difference.String()).
			Strs("unbalanced_entries", unbalanced).
			Msg("ledger inconsistency detected")
	}

	return result, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func missingIDs(requested, marked []string) []string {
	done := make(map[string]bool, len(marked))
	for _, id := range marked {
		done[id] = true
	}
	var missing []string
	for _, id := range requested {
		if !done[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
