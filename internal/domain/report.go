package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedExpense labels expenses recorded without a category.
const UncategorizedExpense = "Uncategorized"

// CategoryTotal is the expense total of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// PeriodSummary is the revenue/expense/profit view of a date range,
// computed from the raw sales and expenses tables.
type PeriodSummary struct {
	DateFrom   time.Time
	DateTo     time.Time
	Revenue    decimal.Decimal
	Expenses   decimal.Decimal
	Profit     decimal.Decimal
	MarginPct  decimal.Decimal
	ByCategory []CategoryTotal
}

// NewPeriodSummary derives profit and margin from revenue and expenses.
// Margin is zero when there is no revenue.
func NewPeriodSummary(from, to time.Time, revenue, expenses decimal.Decimal, byCategory []CategoryTotal) *PeriodSummary {
	profit := revenue.Sub(expenses)

	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = profit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &PeriodSummary{
		DateFrom:   from,
		DateTo:     to,
		Revenue:    revenue,
		Expenses:   expenses,
		Profit:     profit,
		MarginPct:  margin,
		ByCategory: byCategory,
	}
}

// Expense is a row of the raw expenses table.
type Expense struct {
	ID            string
	UserID        string
	CategoryID    *string
	Description   string
	Amount        decimal.Decimal
	PaymentMethod string
	Reference     string
	ExpenseDate   time.Time
	CreatedAt     time.Time
}

// ExpenseConsistency compares the raw expenses table with the ledger's
// operating expense account over the same date range.
type ExpenseConsistency struct {
	DateFrom     time.Time
	DateTo       time.Time
	RawTotal     decimal.Decimal
	LedgerTotal  decimal.Decimal
	Difference   decimal.Decimal
	IsConsistent bool
}

// NewExpenseConsistency builds the comparison result.
func NewExpenseConsistency(from, to time.Time, raw, ledger decimal.Decimal) *ExpenseConsistency {
	diff := raw.Sub(ledger)
	return &ExpenseConsistency{
		DateFrom:     from,
		DateTo:       to,
		RawTotal:     raw,
		LedgerTotal:  ledger,
		Difference:   diff,
		IsConsistent: diff.Abs().LessThanOrEqual(BalanceTolerance),
	}
}

// TrialBalanceRow is one account's position in a trial balance.
type TrialBalanceRow struct {
	AccountID   string
	Code        string
	Name        string
	Type        AccountType
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balance     decimal.Decimal
}
