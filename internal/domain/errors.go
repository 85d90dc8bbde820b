package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrValidation is the parent of every caller-correctable error.
	ErrValidation = errors.New("validation failed")

	// ErrIOFailure is the parent of every storage error surfaced by the ledger.
	ErrIOFailure = errors.New("storage failure")
)

// validationError is a sentinel that also matches ErrValidation.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

func newValidationError(msg string) error {
	return &validationError{msg: msg}
}

var (
	// Journal errors
	ErrEmptyLines     = newValidationError("journal entry has no lines")
	ErrInvalidAmount  = newValidationError("amount must be positive")
	ErrNegativeAmount = newValidationError("debit and credit amounts must not be negative")
	ErrAmountScale    = newValidationError("amounts carry at most 2 decimal places")
	ErrEntryNotFound  = errors.New("journal entry not found")

	// Sale errors
	ErrSaleNotFound       = errors.New("sale not found")
	ErrRefundOfRefund     = newValidationError("a refund cannot be refunded")
	ErrDuplicateReference = errors.New("an entry with this reference is already posted")

	// Account errors
	ErrInvalidAccountCode = newValidationError("account code must not be empty")
	ErrUnknownAccountCode = newValidationError("account code has no classification")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountResolution  = errors.New("account was created but could not be read back")

	// Request errors
	ErrInvalidDateRange = newValidationError("date_from must not be after date_to")
	ErrMissingActor     = newValidationError("acting user id is required")
)

// UnbalancedError is returned when a journal entry's debits and credits differ.
type UnbalancedError struct {
	DebitSum  decimal.Decimal
	CreditSum decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("journal entry must balance. Debits: %s, Credits: %s",
		e.DebitSum.StringFixed(2), e.CreditSum.StringFixed(2))
}

// Is makes UnbalancedError match ErrValidation.
func (e *UnbalancedError) Is(target error) bool { return target == ErrValidation }

// OpError wraps a storage error with the operation that produced it.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrIOFailure, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Is makes OpError match ErrIOFailure.
func (e *OpError) Is(target error) bool { return target == ErrIOFailure }

// IOFailure wraps err as a storage failure of op. Nil stays nil, and errors
// that already carry an operation are returned as they are.
func IOFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return err
	}
	return &OpError{Op: op, Err: err}
}
