package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/usecase"
)

// postCashSale debits cash and credits revenue.
func postCashSale(t *testing.T, l *ledger, amount, date string) {
	t.Helper()
	_, err := l.journal.PostManualEntry(context.Background(), usecase.PostManualEntryInput{
		Description: "cash sale",
		EntryDate:   day(date),
		PostedBy:    "user-1",
		Lines: []usecase.JournalLineInput{
			{AccountCode: "1000", Debit: dec(amount)},
			{AccountCode: "4000", Credit: dec(amount)},
		},
	})
	require.NoError(t, err)
}

func cashLineIDs(t *testing.T, l *ledger) (string, []string) {
	t.Helper()
	ctx := context.Background()
	cash, err := l.accounts.GetAccountByCode(ctx, "1000")
	require.NoError(t, err)
	lines, err := l.journal.ListAccountLines(ctx, usecase.ListAccountLinesInput{AccountID: cash.ID})
	require.NoError(t, err)
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ID)
	}
	return cash.ID, ids
}

func TestReconciliationUseCase_Reconcile(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	postCashSale(t, l, "500", "2026-10-01")
	postCashSale(t, l, "250", "2026-10-02")
	postCashSale(t, l, "100", "2026-10-20")

	cashID, lineIDs := cashLineIDs(t, l)
	require.Len(t, lineIDs, 3)

	recID, err := l.recon.Reconcile(ctx, usecase.ReconcileInput{
		AccountID:        cashID,
		Date:             day("2026-10-15"),
		StatementBalance: dec("760"),
		LineIDs:          lineIDs[:2],
		ReconciledBy:     "auditor",
	})
	require.NoError(t, err)
	require.NotEmpty(t, recID)

	recs, err := l.recon.ListReconciliations(ctx, cashID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, recID, rec.ID)
	assert.True(t, rec.BookBalance.Equal(dec("750")), "book balance %s", rec.BookBalance)
	assert.True(t, rec.StatementBalance.Equal(dec("760")))
	assert.True(t, rec.Variance().Equal(dec("10")), "variance is recorded, not rejected")
	assert.Equal(t, "auditor", rec.ReconciledBy)

	for _, id := range lineIDs[:2] {
		line, ok := l.store.Line(id)
		require.True(t, ok)
		assert.True(t, line.IsReconciled)
		require.NotNil(t, line.ReconciledDate)
		assert.True(t, line.ReconciledDate.Equal(day("2026-10-15")))
	}
	third, _ := l.store.Line(lineIDs[2])
	assert.False(t, third.IsReconciled)

	unreconciled, err := l.journal.ListAccountLines(ctx, usecase.ListAccountLinesInput{AccountID: cashID, UnreconciledOnly: true})
	require.NoError(t, err)
	assert.Len(t, unreconciled, 1)
}

func TestReconciliationUseCase_ReconcileIsIdempotent(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	postCashSale(t, l, "300", "2026-10-01")
	cashID, lineIDs := cashLineIDs(t, l)

	input := usecase.ReconcileInput{
		AccountID:        cashID,
		Date:             day("2026-10-10"),
		StatementBalance: dec("300"),
		LineIDs:          lineIDs,
		ReconciledBy:     "auditor",
	}

	_, err := l.recon.Reconcile(ctx, input)
	require.NoError(t, err)
	first, _ := l.store.Line(lineIDs[0])

	input.Date = day("2026-10-11")
	_, err = l.recon.Reconcile(ctx, input)
	require.NoError(t, err)
	second, _ := l.store.Line(lineIDs[0])

	assert.True(t, second.IsReconciled)
	assert.True(t, first.ReconciledDate.Equal(*second.ReconciledDate), "reconciled date must not move")

	recs := l.store.Reconciliations()
	require.Len(t, recs, 2, "each call records its own snapshot")
	assert.True(t, recs[0].BookBalance.Equal(recs[1].BookBalance))
}

func TestReconciliationUseCase_UnknownAndForeignLinesAreSkipped(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	postCashSale(t, l, "40", "2026-10-01")
	cashID, lineIDs := cashLineIDs(t, l)

	revenue, err := l.accounts.GetAccountByCode(ctx, "4000")
	require.NoError(t, err)
	revenueLines, err := l.journal.ListAccountLines(ctx, usecase.ListAccountLinesInput{AccountID: revenue.ID})
	require.NoError(t, err)
	require.Len(t, revenueLines, 1)

	_, err = l.recon.Reconcile(ctx, usecase.ReconcileInput{
		AccountID:        cashID,
		Date:             day("2026-10-05"),
		StatementBalance: dec("40"),
		LineIDs:          []string{"no-such-line", revenueLines[0].ID, lineIDs[0], lineIDs[0]},
		ReconciledBy:     "auditor",
	})
	require.NoError(t, err)

	foreign, _ := l.store.Line(revenueLines[0].ID)
	assert.False(t, foreign.IsReconciled, "lines of other accounts are never marked")

	own, _ := l.store.Line(lineIDs[0])
	assert.True(t, own.IsReconciled)
}

func TestReconciliationUseCase_Validation(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	_, err := l.recon.Reconcile(ctx, usecase.ReconcileInput{AccountID: "x"})
	assert.ErrorIs(t, err, domain.ErrMissingActor)

	_, err = l.recon.Reconcile(ctx, usecase.ReconcileInput{AccountID: "missing", ReconciledBy: "auditor"})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.Empty(t, l.txManager.Transactions())
}

func TestReconciliationUseCase_SnapshotFailureRollsBackMarks(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	postCashSale(t, l, "90", "2026-10-01")
	cashID, lineIDs := cashLineIDs(t, l)

	l.reconRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, rec *domain.Reconciliation) error {
		return errors.New("insert failed")
	}

	_, err := l.recon.Reconcile(ctx, usecase.ReconcileInput{
		AccountID:        cashID,
		StatementBalance: dec("90"),
		LineIDs:          lineIDs,
		ReconciledBy:     "auditor",
	})
	require.ErrorIs(t, err, domain.ErrIOFailure)

	line, _ := l.store.Line(lineIDs[0])
	assert.False(t, line.IsReconciled)
	assert.Empty(t, l.store.Reconciliations())
}

func TestReconciliationUseCase_CheckLedgerConsistency(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	postCashSale(t, l, "10", "2026-10-01")
	_, err := l.journal.PostSimpleExpense(ctx, usecase.PostSimpleExpenseInput{Amount: dec("3"), PostedBy: "u"})
	require.NoError(t, err)

	result, err := l.recon.CheckLedgerConsistency(ctx)
	require.NoError(t, err)
	assert.True(t, result.IsConsistent)
	assert.True(t, result.TotalDebits.Equal(dec("13")))
	assert.True(t, result.Difference.IsZero())

	l.ledgerRepo.CheckConsistencyFunc = func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
		return dec("10"), dec("9.5"), nil
	}
	l.ledgerRepo.UnbalancedEntriesFunc = func(ctx context.Context, tolerance decimal.Decimal, limit int) ([]string, error) {
		assert.True(t, tolerance.Equal(domain.BalanceTolerance))
		return []string{"je-broken"}, nil
	}
	result, err = l.recon.CheckLedgerConsistency(ctx)
	require.NoError(t, err)
	assert.False(t, result.IsConsistent)
	assert.True(t, result.Difference.Equal(dec("0.5")))
	assert.Equal(t, []string{"je-broken"}, result.UnbalancedEntries)
}

func TestReconciliationUseCase_EntryWithinToleranceKeepsLedgerConsistent(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	_, err := l.journal.PostManualEntry(ctx, usecase.PostManualEntryInput{
		Description: "rounding on a supplier invoice",
		PostedBy:    "user-1",
		Lines: []usecase.JournalLineInput{
			{AccountCode: "6000", Debit: dec("100.00")},
			{AccountCode: "1000", Credit: dec("99.99")},
		},
	})
	require.NoError(t, err)

	result, err := l.recon.CheckLedgerConsistency(ctx)
	require.NoError(t, err)
	assert.True(t, result.IsConsistent, "an entry accepted for posting must not fail the ledger check")
	assert.Empty(t, result.UnbalancedEntries)
	assert.True(t, result.Difference.Equal(dec("0.01")))
}

func TestReconciliationUseCase_UnbalancedEntriesStorageFailure(t *testing.T) {
	l := newLedger(t)

	l.ledgerRepo.UnbalancedEntriesFunc = func(ctx context.Context, tolerance decimal.Decimal, limit int) ([]string, error) {
		return nil, errors.New("statement timeout")
	}

	_, err := l.recon.CheckLedgerConsistency(context.Background())
	require.ErrorIs(t, err, domain.ErrIOFailure)
}

func TestBalanceUseCase_TrialBalance(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	postCashSale(t, l, "1000", "2026-10-01")
	_, err := l.journal.PostSimpleExpense(ctx, usecase.PostSimpleExpenseInput{
		Amount:     dec("400"),
		TenderType: "cash",
		EntryDate:  day("2026-10-02"),
		PostedBy:   "u",
	})
	require.NoError(t, err)

	rows, err := l.balances.TrialBalance(ctx, day("2026-10-31"))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "1000", rows[0].Code)
	assert.True(t, rows[0].TotalDebit.Equal(dec("1000")))
	assert.True(t, rows[0].TotalCredit.Equal(dec("400")))
	assert.True(t, rows[0].Balance.Equal(dec("600")))
	assert.Equal(t, "4000", rows[1].Code)
	assert.Equal(t, domain.AccountTypeRevenue, rows[1].Type)
	assert.Equal(t, "6000", rows[2].Code)

	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(row.Balance)
	}
	assert.True(t, sum.IsZero(), "trial balance must net to zero, got %s", sum)
}

func TestBalanceUseCase_AccountBalance(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	balance, err := l.balances.AccountBalance(ctx, "no-lines", day("2026-10-01"))
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	l.balanceRepo.BalanceAsOfFunc = func(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
		return decimal.Zero, errors.New("timeout")
	}
	_, err = l.balances.AccountBalance(ctx, "acc", day("2026-10-01"))
	assert.ErrorIs(t, err, domain.ErrIOFailure)

	_, err = l.balances.AccountBalanceByCode(ctx, "", day("2026-10-01"))
	assert.ErrorIs(t, err, domain.ErrInvalidAccountCode)
}
