package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxAccountCodeLength = 20
	MaxEntryAmount       = "1000000000000" // 1 trillion
	AmountScale          = 2
	DateLayout           = "2006-01-02"
)

// Tender types accepted by the simple expense posting.
const (
	TenderCash = "cash"
	TenderBank = "bank"
)

// NormalizeAccountCode trims code and checks it is usable as an account code.
func NormalizeAccountCode(code string) (string, error) {
	code = strings.TrimSpace(code)

	if code == "" {
		return "", ErrInvalidAccountCode
	}

	if len(code) > MaxAccountCodeLength {
		return "", fmt.Errorf("%w: code exceeds %d characters", ErrInvalidAccountCode, MaxAccountCodeLength)
	}

	return code, nil
}

// ValidateAmount checks a positive posting amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount := decimal.RequireFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxEntryAmount)
	}

	return ValidateScale(amount)
}

// ValidateScale rejects amounts that NUMERIC(18,2) columns would round.
// Trailing zeros are fine: 1.500 is accepted, 1.505 is not.
func ValidateScale(amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(AmountScale)) {
		return fmt.Errorf("%w: got %s", ErrAmountScale, amount.String())
	}
	return nil
}

// ValidateActor checks that an acting user id was supplied.
func ValidateActor(actor string) error {
	if strings.TrimSpace(actor) == "" {
		return ErrMissingActor
	}
	return nil
}

// AssetAccountForTender returns the asset account money of the given
// tender type moves through: cash uses 1000, anything else 1100.
func AssetAccountForTender(tender string) string {
	if strings.EqualFold(strings.TrimSpace(tender), TenderCash) {
		return AccountCodeCash
	}
	return AccountCodeBank
}

// CreditAccountForTender returns the asset account reduced by a payment of
// the given tender type.
func CreditAccountForTender(tender string) string {
	return AssetAccountForTender(tender)
}

// NormalizeDate strips the clock from t, keeping its calendar date in UTC.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return t, nil
}

// ValidateDateRange checks that from is not after to.
func ValidateDateRange(from, to time.Time) error {
	if NormalizeDate(from).After(NormalizeDate(to)) {
		return ErrInvalidDateRange
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 500
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
