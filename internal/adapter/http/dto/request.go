package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/usecase"
)

// ResolveAccountRequest represents a request to resolve an account code.
type ResolveAccountRequest struct {
	Code string `json:"code"`
}

// JournalLineRequest is one leg of a manual journal entry.
type JournalLineRequest struct {
	AccountID   string          `json:"account_id,omitempty"`
	AccountCode string          `json:"account_code,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// PostEntryRequest represents a request to post a manual journal entry.
type PostEntryRequest struct {
	Lines       []JournalLineRequest `json:"lines"`
	Description string               `json:"description"`
	Reference   string               `json:"reference,omitempty"`
	EntryDate   string               `json:"entry_date,omitempty"`
	PostedBy    string               `json:"posted_by,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PostEntryRequest) ToUseCaseInput() (usecase.PostManualEntryInput, error) {
	entryDate, err := ParseOptionalDate(r.EntryDate)
	if err != nil {
		return usecase.PostManualEntryInput{}, err
	}

	lines := make([]usecase.JournalLineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = usecase.JournalLineInput{
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}

	return usecase.PostManualEntryInput{
		Lines:       lines,
		Description: r.Description,
		Reference:   r.Reference,
		EntryDate:   entryDate,
		PostedBy:    r.PostedBy,
	}, nil
}

// ReverseEntryRequest represents a request to reverse a posted entry.
type ReverseEntryRequest struct {
	EntryDate string `json:"entry_date,omitempty"`
	PostedBy  string `json:"posted_by,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ReverseEntryRequest) ToUseCaseInput(entryID string) (usecase.ReverseEntryInput, error) {
	entryDate, err := ParseOptionalDate(r.EntryDate)
	if err != nil {
		return usecase.ReverseEntryInput{}, err
	}
	return usecase.ReverseEntryInput{
		EntryID:   entryID,
		EntryDate: entryDate,
		PostedBy:  r.PostedBy,
	}, nil
}

// RecordExpenseRequest represents a raw expense to store and post.
type RecordExpenseRequest struct {
	CategoryID    *string         `json:"category_id,omitempty"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Reference     string          `json:"reference,omitempty"`
	ExpenseDate   string          `json:"expense_date,omitempty"`
	RecordedBy    string          `json:"recorded_by,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordExpenseRequest) ToUseCaseInput() (usecase.RecordExpenseInput, error) {
	expenseDate, err := ParseOptionalDate(r.ExpenseDate)
	if err != nil {
		return usecase.RecordExpenseInput{}, err
	}
	return usecase.RecordExpenseInput{
		CategoryID:    r.CategoryID,
		Description:   r.Description,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		Reference:     r.Reference,
		ExpenseDate:   expenseDate,
		RecordedBy:    r.RecordedBy,
	}, nil
}

// PostExpenseRequest represents a two-line expense posting without a raw row.
type PostExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	TenderType  string          `json:"tender_type"`
	Reference   string          `json:"reference,omitempty"`
	EntryDate   string          `json:"entry_date,omitempty"`
	PostedBy    string          `json:"posted_by,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PostExpenseRequest) ToUseCaseInput() (usecase.PostSimpleExpenseInput, error) {
	entryDate, err := ParseOptionalDate(r.EntryDate)
	if err != nil {
		return usecase.PostSimpleExpenseInput{}, err
	}
	return usecase.PostSimpleExpenseInput{
		Amount:      r.Amount,
		Description: r.Description,
		TenderType:  r.TenderType,
		Reference:   r.Reference,
		EntryDate:   entryDate,
		PostedBy:    r.PostedBy,
	}, nil
}

// ReconcileRequest represents a statement reconciliation request.
type ReconcileRequest struct {
	AccountID        string          `json:"account_id"`
	Date             string          `json:"date,omitempty"`
	StatementBalance decimal.Decimal `json:"statement_balance"`
	LineIDs          []string        `json:"line_ids"`
	ReconciledBy     string          `json:"reconciled_by,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ReconcileRequest) ToUseCaseInput() (usecase.ReconcileInput, error) {
	date, err := ParseOptionalDate(r.Date)
	if err != nil {
		return usecase.ReconcileInput{}, err
	}
	return usecase.ReconcileInput{
		AccountID:        r.AccountID,
		Date:             date,
		StatementBalance: r.StatementBalance,
		LineIDs:          r.LineIDs,
		ReconciledBy:     r.ReconciledBy,
	}, nil
}

// ParseOptionalDate parses a YYYY-MM-DD date. An empty string is the zero
// time, which the use cases read as today.
func ParseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return domain.ParseDate(s)
}

// PostSaleRequest represents a completed sale to post to the ledger.
type PostSaleRequest struct {
	SaleID        string          `json:"sale_id,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount_amount"`
	Tax           decimal.Decimal `json:"tax_amount"`
	Total         decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	SaleDate      string          `json:"sale_date,omitempty"`
	PostedBy      string          `json:"posted_by,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PostSaleRequest) ToUseCaseInput() (usecase.PostSaleInput, error) {
	saleDate, err := ParseOptionalDate(r.SaleDate)
	if err != nil {
		return usecase.PostSaleInput{}, err
	}
	return usecase.PostSaleInput{
		SaleID:        r.SaleID,
		Subtotal:      r.Subtotal,
		Discount:      r.Discount,
		Tax:           r.Tax,
		Total:         r.Total,
		PaymentMethod: r.PaymentMethod,
		SaleDate:      saleDate,
		PostedBy:      r.PostedBy,
	}, nil
}

// RefundSaleRequest represents a request to refund a posted sale.
type RefundSaleRequest struct {
	RefundDate string `json:"refund_date,omitempty"`
	PostedBy   string `json:"posted_by,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RefundSaleRequest) ToUseCaseInput(saleID string) (usecase.PostRefundInput, error) {
	refundDate, err := ParseOptionalDate(r.RefundDate)
	if err != nil {
		return usecase.PostRefundInput{}, err
	}
	return usecase.PostRefundInput{
		SaleID:     saleID,
		RefundDate: refundDate,
		PostedBy:   r.PostedBy,
	}, nil
}
