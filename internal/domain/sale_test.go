package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func sale(subtotal, discount, tax, total string) *Sale {
	return &Sale{
		ID:             "S1",
		Subtotal:       decimal.RequireFromString(subtotal),
		DiscountAmount: decimal.RequireFromString(discount),
		TaxAmount:      decimal.RequireFromString(tax),
		TotalAmount:    decimal.RequireFromString(total),
		PaymentMethod:  TenderCash,
	}
}

func TestSale_PostingLinesBalance(t *testing.T) {
	s := sale("100", "10", "13.50", "103.50")

	entry := &JournalEntry{Description: "sale", Lines: s.PostingLines()}
	if err := entry.Prepare(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entry.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(entry.Lines))
	}

	want := []struct {
		code          string
		debit, credit string
	}{
		{AccountCodeCash, "103.50", "0"},
		{AccountCodeRevenue, "0", "90"},
		{AccountCodeTaxPayable, "0", "13.50"},
	}
	for i, w := range want {
		l := entry.Lines[i]
		if l.AccountCode != w.code || !l.DebitAmount.Equal(decimal.RequireFromString(w.debit)) || !l.CreditAmount.Equal(decimal.RequireFromString(w.credit)) {
			t.Errorf("line %d: got %s dr %s cr %s", i, l.AccountCode, l.DebitAmount, l.CreditAmount)
		}
	}
}

func TestSale_PostingLinesWithoutTax(t *testing.T) {
	s := sale("40", "0", "0", "40")
	s.PaymentMethod = "card"

	entry := &JournalEntry{Lines: s.PostingLines()}
	if err := entry.Prepare(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entry.Lines) != 2 {
		t.Fatalf("expected the zero tax line to be dropped, got %d lines", len(entry.Lines))
	}
	if entry.Lines[0].AccountCode != AccountCodeBank {
		t.Errorf("card sales debit the bank account, got %s", entry.Lines[0].AccountCode)
	}
}

func TestSale_TotalThatDoesNotAddUpIsUnbalanced(t *testing.T) {
	s := sale("100", "0", "10", "120")

	entry := &JournalEntry{Lines: s.PostingLines()}
	var unbalanced *UnbalancedError
	if err := entry.Prepare(); !errors.As(err, &unbalanced) {
		t.Fatalf("expected UnbalancedError, got %v", err)
	}
}

func TestSale_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Sale)
		expect error
	}{
		{name: "valid", mutate: func(*Sale) {}},
		{name: "missing id", mutate: func(s *Sale) { s.ID = " " }, expect: ErrValidation},
		{name: "id too long", mutate: func(s *Sale) { s.ID = "S-0123456789012345678901234" }, expect: ErrValidation},
		{name: "zero total", mutate: func(s *Sale) { s.TotalAmount = decimal.Zero }, expect: ErrInvalidAmount},
		{name: "negative tax", mutate: func(s *Sale) { s.TaxAmount = decimal.NewFromInt(-1) }, expect: ErrNegativeAmount},
		{name: "sub-cent subtotal", mutate: func(s *Sale) { s.Subtotal = decimal.RequireFromString("100.001") }, expect: ErrAmountScale},
		{name: "discount above subtotal", mutate: func(s *Sale) { s.DiscountAmount = decimal.NewFromInt(101) }, expect: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sale("100", "0", "10", "110")
			tt.mutate(s)

			err := s.Validate()
			if tt.expect == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, err)
			}
		})
	}
}

func TestSale_Refund(t *testing.T) {
	s := sale("100", "10", "9", "99")
	at := time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC)

	refund := s.Refund("R1", at)
	if !refund.IsRefund() || *refund.RefundOf != "S1" {
		t.Fatalf("expected refund of S1, got %+v", refund)
	}
	if !refund.TotalAmount.Equal(decimal.NewFromInt(-99)) || !refund.NetRevenue().Equal(decimal.NewFromInt(-90)) {
		t.Errorf("expected negated amounts, got total %s revenue %s", refund.TotalAmount, refund.NetRevenue())
	}
	if s.IsRefund() {
		t.Errorf("the original sale must not change")
	}

	lines := s.RefundLines()
	if lines[0].AccountCode != AccountCodeCash || !lines[0].CreditAmount.Equal(decimal.NewFromInt(99)) {
		t.Errorf("refund must credit cash, got %+v", lines[0])
	}
	if !lines[1].DebitAmount.Equal(decimal.NewFromInt(90)) || !lines[2].DebitAmount.Equal(decimal.NewFromInt(9)) {
		t.Errorf("refund must debit revenue and tax payable, got %+v %+v", lines[1], lines[2])
	}
}

func TestSaleReferences(t *testing.T) {
	if SaleReference("42") != "SALE-42" || RefundReference("42") != "REFUND-42" {
		t.Fatalf("unexpected references %s %s", SaleReference("42"), RefundReference("42"))
	}
}
