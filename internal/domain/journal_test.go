package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func line(debit, credit string) *JournalLine {
	return &JournalLine{
		AccountID:    "acc",
		DebitAmount:  decimal.RequireFromString(debit),
		CreditAmount: decimal.RequireFromString(credit),
	}
}

func TestJournalEntry_Prepare(t *testing.T) {
	tests := []struct {
		name        string
		lines       []*JournalLine
		expectError error
		expectLines int
		expectTotal string
	}{
		{
			name:        "balanced two lines",
			lines:       []*JournalLine{line("1500", "0"), line("0", "1500")},
			expectLines: 2,
			expectTotal: "1500",
		},
		{
			name:        "zero line dropped",
			lines:       []*JournalLine{line("100", "0"), line("0", "0"), line("0", "100")},
			expectLines: 2,
			expectTotal: "100",
		},
		{
			name:        "difference within tolerance",
			lines:       []*JournalLine{line("100.01", "0"), line("0", "100")},
			expectLines: 2,
			expectTotal: "100.01",
		},
		{
			name:        "trailing zeros beyond cents",
			lines:       []*JournalLine{line("12.500", "0"), line("0", "12.5")},
			expectLines: 2,
			expectTotal: "12.5",
		},
		{
			name:        "sub-cent leg rejected before zero lines are dropped",
			lines:       []*JournalLine{line("0.004", "0"), line("0", "0.004")},
			expectError: ErrAmountScale,
		},
		{
			name:        "sub-cent leg on a balanced entry",
			lines:       []*JournalLine{line("100.006", "0"), line("0", "100")},
			expectError: ErrAmountScale,
		},
		{
			name:        "empty",
			lines:       nil,
			expectError: ErrEmptyLines,
		},
		{
			name:        "all lines zero",
			lines:       []*JournalLine{line("0", "0"), line("0", "0")},
			expectError: ErrEmptyLines,
		},
		{
			name:        "negative debit",
			lines:       []*JournalLine{line("-5", "0"), line("0", "-5")},
			expectError: ErrNegativeAmount,
		},
		{
			name:        "unbalanced",
			lines:       []*JournalLine{line("0", "1000"), line("998", "0")},
			expectError: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &JournalEntry{Description: "test", Lines: tt.lines}

			err := entry.Prepare()

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(entry.Lines) != tt.expectLines {
				t.Errorf("expected %d lines, got %d", tt.expectLines, len(entry.Lines))
			}
			if !entry.TotalAmount.Equal(decimal.RequireFromString(tt.expectTotal)) {
				t.Errorf("expected total %s, got %s", tt.expectTotal, entry.TotalAmount)
			}
		})
	}
}

func TestJournalEntry_PrepareInheritsDescription(t *testing.T) {
	entry := &JournalEntry{
		Description: "rent",
		Lines:       []*JournalLine{line("10", "0"), {AccountID: "b", CreditAmount: decimal.NewFromInt(10), Description: "own"}},
	}

	if err := entry.Prepare(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.Lines[0].Description != "rent" {
		t.Errorf("expected inherited description, got %q", entry.Lines[0].Description)
	}
	if entry.Lines[1].Description != "own" {
		t.Errorf("expected line description kept, got %q", entry.Lines[1].Description)
	}
}

func TestUnbalancedError_Message(t *testing.T) {
	err := CheckBalanced(decimal.NewFromInt(998), decimal.NewFromInt(1000))

	var unbalanced *UnbalancedError
	if !errors.As(err, &unbalanced) {
		t.Fatalf("expected UnbalancedError, got %v", err)
	}

	if !unbalanced.DebitSum.Equal(decimal.NewFromInt(998)) || !unbalanced.CreditSum.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("unexpected sums: %s / %s", unbalanced.DebitSum, unbalanced.CreditSum)
	}

	expected := "journal entry must balance. Debits: 998.00, Credits: 1000.00"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestJournalEntry_ReversalLines(t *testing.T) {
	entry := &JournalEntry{Lines: []*JournalLine{line("40", "0"), line("0", "40")}}

	reversed := entry.ReversalLines()

	if !reversed[0].CreditAmount.Equal(decimal.NewFromInt(40)) || !reversed[0].DebitAmount.IsZero() {
		t.Errorf("expected first line to become a credit, got %+v", reversed[0])
	}
	if !reversed[1].DebitAmount.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected second line to become a debit, got %+v", reversed[1])
	}
	if !entry.Lines[0].DebitAmount.Equal(decimal.NewFromInt(40)) {
		t.Errorf("original lines must not change")
	}
}
