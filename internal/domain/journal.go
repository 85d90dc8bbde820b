package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest debit/credit difference still treated as balanced.
var BalanceTolerance = decimal.RequireFromString("0.01")

// JournalEntry is a balanced group of journal lines posted together.
type JournalEntry struct {
	ID          string
	Reference   string
	Description string
	EntryDate   time.Time
	TotalAmount decimal.Decimal
	CreatedBy   string
	CreatedAt   time.Time
	Lines       []*JournalLine
}

// JournalLine is a single debit or credit leg of a journal entry.
type JournalLine struct {
	ID             string
	JournalEntryID string
	AccountID      string
	AccountCode    string
	DebitAmount    decimal.Decimal
	CreditAmount   decimal.Decimal
	Description    string
	IsReconciled   bool
	ReconciledDate *time.Time
	EntryDate      time.Time
}

// IsZero reports whether the line carries neither a debit nor a credit.
func (l *JournalLine) IsZero() bool {
	return l.DebitAmount.IsZero() && l.CreditAmount.IsZero()
}

// Totals sums the debit and credit legs of lines.
func Totals(lines []*JournalLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.DebitAmount)
		credit = credit.Add(l.CreditAmount)
	}
	return debit, credit
}

// CheckBalanced fails with *UnbalancedError when debit and credit differ by
// more than BalanceTolerance.
func CheckBalanced(debit, credit decimal.Decimal) error {
	if debit.Sub(credit).Abs().GreaterThan(BalanceTolerance) {
		return &UnbalancedError{DebitSum: debit, CreditSum: credit}
	}
	return nil
}

// Prepare validates the entry and normalizes it for posting: negative legs
// and legs finer than a cent are rejected, all-zero lines are dropped, the debit/credit balance is
// checked, blank line descriptions inherit the entry description and
// TotalAmount is set to the sum of debits.
func (e *JournalEntry) Prepare() error {
	if len(e.Lines) == 0 {
		return ErrEmptyLines
	}

	kept := make([]*JournalLine, 0, len(e.Lines))
	for _, l := range e.Lines {
		if l.DebitAmount.IsNegative() || l.CreditAmount.IsNegative() {
			return ErrNegativeAmount
		}
		if err := ValidateScale(l.DebitAmount); err != nil {
			return err
		}
		if err := ValidateScale(l.CreditAmount); err != nil {
			return err
		}
		if l.IsZero() {
			continue
		}
		if l.Description == "" {
			l.Description = e.Description
		}
		kept = append(kept, l)
	}

	debit, credit := Totals(kept)
	if err := CheckBalanced(debit, credit); err != nil {
		return err
	}

	if len(kept) == 0 {
		return ErrEmptyLines
	}

	e.Lines = kept
	e.TotalAmount = debit
	return nil
}

// ReversalLines returns copies of the entry's lines with debit and credit swapped.
func (e *JournalEntry) ReversalLines() []*JournalLine {
	lines := make([]*JournalLine, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, &JournalLine{
			AccountID:    l.AccountID,
			AccountCode:  l.AccountCode,
			DebitAmount:  l.CreditAmount,
			CreditAmount: l.DebitAmount,
			Description:  l.Description,
		})
	}
	return lines
}
