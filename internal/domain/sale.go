package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Reference prefixes of sale postings. One sale has at most one posting of
// each kind.
const (
	SaleReferencePrefix   = "SALE-"
	RefundReferencePrefix = "REFUND-"
)

// MaxSaleIDLength is the width of the sales id column.
const MaxSaleIDLength = 26

// Sale is a row of the sales table. Refund rows carry negated amounts and
// point at the sale they refund through RefundOf.
type Sale struct {
	ID             string
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentMethod  string
	RefundOf       *string
	CreatedAt      time.Time
}

// SaleReference is the journal reference of the posting for sale id.
func SaleReference(id string) string { return SaleReferencePrefix + id }

// RefundReference is the journal reference of the refund of sale id.
func RefundReference(id string) string { return RefundReferencePrefix + id }

// IsRefund reports whether the row records a refund.
func (s *Sale) IsRefund() bool { return s.RefundOf != nil }

// NetRevenue is the revenue recognized for the sale: subtotal less discount.
func (s *Sale) NetRevenue() decimal.Decimal {
	return s.Subtotal.Sub(s.DiscountAmount)
}

// Validate checks a sale before it is posted. Whether the total matches
// revenue plus tax is left to the entry balance check.
func (s *Sale) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: sale id is required", ErrValidation)
	}
	if len(s.ID) > MaxSaleIDLength {
		return fmt.Errorf("%w: sale id exceeds %d characters", ErrValidation, MaxSaleIDLength)
	}
	if err := ValidateAmount(s.TotalAmount); err != nil {
		return err
	}
	for _, amount := range []decimal.Decimal{s.Subtotal, s.DiscountAmount, s.TaxAmount} {
		if amount.IsNegative() {
			return ErrNegativeAmount
		}
		if err := ValidateScale(amount); err != nil {
			return err
		}
	}
	if s.DiscountAmount.GreaterThan(s.Subtotal) {
		return fmt.Errorf("%w: discount exceeds subtotal", ErrValidation)
	}
	return nil
}

// PostingLines debits the tender's asset account with the total and
// credits revenue and tax payable. A zero tax line is dropped by Prepare.
func (s *Sale) PostingLines() []*JournalLine {
	return []*JournalLine{
		{AccountCode: AssetAccountForTender(s.PaymentMethod), DebitAmount: s.TotalAmount, CreditAmount: decimal.Zero},
		{AccountCode: AccountCodeRevenue, DebitAmount: decimal.Zero, CreditAmount: s.NetRevenue()},
		{AccountCode: AccountCodeTaxPayable, DebitAmount: decimal.Zero, CreditAmount: s.TaxAmount},
	}
}

// RefundLines are PostingLines with debit and credit swapped.
func (s *Sale) RefundLines() []*JournalLine {
	lines := s.PostingLines()
	for _, l := range lines {
		l.DebitAmount, l.CreditAmount = l.CreditAmount, l.DebitAmount
	}
	return lines
}

// Refund builds the refund row for s.
func (s *Sale) Refund(id string, at time.Time) *Sale {
	original := s.ID
	return &Sale{
		ID:             id,
		Subtotal:       s.Subtotal.Neg(),
		DiscountAmount: s.DiscountAmount.Neg(),
		TaxAmount:      s.TaxAmount.Neg(),
		TotalAmount:    s.TotalAmount.Neg(),
		PaymentMethod:  s.PaymentMethod,
		RefundOf:       &original,
		CreatedAt:      at,
	}
}
