package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reconciliation is an immutable snapshot comparing an external statement
// balance with the book balance of an account on a given date.
type Reconciliation struct {
	ID                 string
	AccountID          string
	ReconciliationDate time.Time
	StatementBalance   decimal.Decimal
	BookBalance        decimal.Decimal
	ReconciledBy       string
	CreatedAt          time.Time
}

// Variance is the statement balance minus the book balance.
func (r *Reconciliation) Variance() decimal.Decimal {
	return r.StatementBalance.Sub(r.BookBalance)
}

// IsMatched reports whether the statement and book balances agree within
// BalanceTolerance.
func (r *Reconciliation) IsMatched() bool {
	return r.Variance().Abs().LessThanOrEqual(BalanceTolerance)
}
