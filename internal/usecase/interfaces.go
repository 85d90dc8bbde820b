package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
)

// AccountRepository defines data access for the chart of accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByCode(ctx context.Context, code string) (*domain.Account, error)
	// InsertIfAbsent inserts account unless an account with the same code
	// already exists. It reports whether a row was written.
	InsertIfAbsent(ctx context.Context, account *domain.Account) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// JournalRepository defines data access for journal entries and lines.
type JournalRepository interface {
	CreateEntry(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	CreateLines(ctx context.Context, tx Transaction, lines []*domain.JournalLine) error
	GetByID(ctx context.Context, id string) (*domain.JournalEntry, error)
	// GetByReference returns the oldest entry carrying ref, or
	// domain.ErrEntryNotFound.
	GetByReference(ctx context.Context, ref string) (*domain.JournalEntry, error)
	ListLinesByAccount(ctx context.Context, accountID string, unreconciledOnly bool, limit, offset int) ([]*domain.JournalLine, error)
}

// BalanceRepository computes balances from journal lines.
type BalanceRepository interface {
	BalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)
	BalanceAsOfTx(ctx context.Context, tx Transaction, accountID string, asOf time.Time) (decimal.Decimal, error)
	// NetDebitBetween returns Σ(debit - credit) for lines of entries dated
	// in [from, to].
	NetDebitBetween(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error)
	TrialBalance(ctx context.Context, asOf time.Time) ([]*domain.TrialBalanceRow, error)
}

// ReconciliationRepository defines data access for reconciliation snapshots.
type ReconciliationRepository interface {
	// MarkLinesReconciled flags the unreconciled lines of accountID among
	// lineIDs and returns the ids that were changed.
	MarkLinesReconciled(ctx context.Context, tx Transaction, accountID string, lineIDs []string, date time.Time) ([]string, error)
	Create(ctx context.Context, tx Transaction, rec *domain.Reconciliation) error
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Reconciliation, error)
}

// ExpenseRepository writes raw expense records.
type ExpenseRepository interface {
	CreateTx(ctx context.Context, tx Transaction, expense *domain.Expense) error
}

// SaleRepository stores sales and refunds.
type SaleRepository interface {
	// CreateTx inserts sale unless a row with its id, or a refund of the
	// same sale, already exists. It reports whether a row was written.
	CreateTx(ctx context.Context, tx Transaction, sale *domain.Sale) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
}

// ReportRepository reads the operational sales and expense tables.
type ReportRepository interface {
	Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	Expenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	ExpensesByCategory(ctx context.Context, from, to time.Time) ([]domain.CategoryTotal, error)
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	CheckConsistency(ctx context.Context) (totalDebits, totalCredits decimal.Decimal, err error)
	// UnbalancedEntries lists up to limit entries whose debit and credit
	// sums differ by more than tolerance.
	UnbalancedEntries(ctx context.Context, tolerance decimal.Decimal, limit int) ([]string, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries operations that failed with a transient storage error.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// AccountCache caches account ids by code. Misses return "" and no error.
type AccountCache interface {
	GetAccountID(ctx context.Context, code string) (string, error)
	SetAccountID(ctx context.Context, code, id string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key whose request did not succeed so it can be retried.
	Release(ctx context.Context, key string) error
}
