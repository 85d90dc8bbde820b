package dto

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/usecase"
)

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a paginated list of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ResolveAccountResponse carries the id a code resolved to.
type ResolveAccountResponse struct {
	Code      string `json:"code"`
	AccountID string `json:"account_id"`
}

// BalanceResponse is an account balance as of a date.
type BalanceResponse struct {
	AccountID string          `json:"account_id,omitempty"`
	Code      string          `json:"code,omitempty"`
	AsOf      string          `json:"as_of"`
	Balance   decimal.Decimal `json:"balance"`
}

// JournalLineResponse represents a journal line in API responses.
type JournalLineResponse struct {
	ID             string          `json:"id"`
	JournalEntryID string          `json:"journal_entry_id"`
	AccountID      string          `json:"account_id"`
	AccountCode    string          `json:"account_code,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Description    string          `json:"description,omitempty"`
	IsReconciled   bool            `json:"is_reconciled"`
	ReconciledDate *string         `json:"reconciled_date,omitempty"`
	EntryDate      string          `json:"entry_date,omitempty"`
}

// JournalLineFromDomain converts a domain line to response.
func JournalLineFromDomain(l *domain.JournalLine) *JournalLineResponse {
	resp := &JournalLineResponse{
		ID:             l.ID,
		JournalEntryID: l.JournalEntryID,
		AccountID:      l.AccountID,
		AccountCode:    l.AccountCode,
		Debit:          l.DebitAmount,
		Credit:         l.CreditAmount,
		Description:    l.Description,
		IsReconciled:   l.IsReconciled,
	}
	if l.ReconciledDate != nil {
		d := FormatDate(*l.ReconciledDate)
		resp.ReconciledDate = &d
	}
	if !l.EntryDate.IsZero() {
		resp.EntryDate = FormatDate(l.EntryDate)
	}
	return resp
}

// JournalLinesFromDomain converts domain lines to responses.
func JournalLinesFromDomain(lines []*domain.JournalLine) []*JournalLineResponse {
	result := make([]*JournalLineResponse, len(lines))
	for i, l := range lines {
		result[i] = JournalLineFromDomain(l)
	}
	return result
}

// JournalEntryResponse represents a journal entry with its lines.
type JournalEntryResponse struct {
	ID          string                 `json:"id"`
	Reference   string                 `json:"reference,omitempty"`
	Description string                 `json:"description"`
	EntryDate   string                 `json:"entry_date"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
	CreatedBy   string                 `json:"created_by"`
	CreatedAt   time.Time              `json:"created_at"`
	Lines       []*JournalLineResponse `json:"lines"`
}

// JournalEntryFromDomain converts a domain entry to response.
func JournalEntryFromDomain(e *domain.JournalEntry) *JournalEntryResponse {
	return &JournalEntryResponse{
		ID:          e.ID,
		Reference:   e.Reference,
		Description: e.Description,
		EntryDate:   FormatDate(e.EntryDate),
		TotalAmount: e.TotalAmount,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		Lines:       JournalLinesFromDomain(e.Lines),
	}
}

// PostedEntryResponse carries the id of a newly posted entry.
type PostedEntryResponse struct {
	JournalEntryID string `json:"journal_entry_id"`
}

// RecordExpenseResponse carries the ids written by an expense recording.
type RecordExpenseResponse struct {
	ExpenseID      string `json:"expense_id"`
	JournalEntryID string `json:"journal_entry_id"`
}

// ReconciliationResponse represents a reconciliation snapshot.
type ReconciliationResponse struct {
	ID                 string          `json:"id"`
	AccountID          string          `json:"account_id"`
	ReconciliationDate string          `json:"reconciliation_date"`
	StatementBalance   decimal.Decimal `json:"statement_balance"`
	BookBalance        decimal.Decimal `json:"book_balance"`
	Variance           decimal.Decimal `json:"variance"`
	IsMatched          bool            `json:"is_matched"`
	ReconciledBy       string          `json:"reconciled_by"`
	CreatedAt          time.Time       `json:"created_at"`
}

// ReconciliationFromDomain converts a domain reconciliation to response.
func ReconciliationFromDomain(r *domain.Reconciliation) *ReconciliationResponse {
	return &ReconciliationResponse{
		ID:                 r.ID,
		AccountID:          r.AccountID,
		ReconciliationDate: FormatDate(r.ReconciliationDate),
		StatementBalance:   r.StatementBalance,
		BookBalance:        r.BookBalance,
		Variance:           r.Variance(),
		IsMatched:          r.IsMatched(),
		ReconciledBy:       r.ReconciledBy,
		CreatedAt:          r.CreatedAt,
	}
}

// ReconciliationsFromDomain converts domain reconciliations to responses.
func ReconciliationsFromDomain(recs []*domain.Reconciliation) []*ReconciliationResponse {
	result := make([]*ReconciliationResponse, len(recs))
	for i, r := range recs {
		result[i] = ReconciliationFromDomain(r)
	}
	return result
}

// ReconcileResponse carries the id of a new reconciliation snapshot.
type ReconcileResponse struct {
	ReconciliationID string `json:"reconciliation_id"`
}

// CategoryTotalResponse is one category of a period summary.
type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// PeriodSummaryResponse is the revenue/expense/profit view of a range.
type PeriodSummaryResponse struct {
	DateFrom   string                  `json:"date_from"`
	DateTo     string                  `json:"date_to"`
	Revenue    decimal.Decimal         `json:"revenue"`
	Expenses   decimal.Decimal         `json:"expenses"`
	Profit     decimal.Decimal         `json:"profit"`
	MarginPct  decimal.Decimal         `json:"margin_pct"`
	ByCategory []CategoryTotalResponse `json:"by_category"`
}

// PeriodSummaryFromDomain converts a summary to response.
func PeriodSummaryFromDomain(s *domain.PeriodSummary) *PeriodSummaryResponse {
	categories := make([]CategoryTotalResponse, len(s.ByCategory))
	for i, c := range s.ByCategory {
		categories[i] = CategoryTotalResponse{Category: c.Category, Total: c.Total}
	}
	return &PeriodSummaryResponse{
		DateFrom:   FormatDate(s.DateFrom),
		DateTo:     FormatDate(s.DateTo),
		Revenue:    s.Revenue,
		Expenses:   s.Expenses,
		Profit:     s.Profit,
		MarginPct:  s.MarginPct,
		ByCategory: categories,
	}
}

// ExpenseConsistencyResponse compares the expenses table with the ledger.
type ExpenseConsistencyResponse struct {
	DateFrom     string          `json:"date_from"`
	DateTo       string          `json:"date_to"`
	RawTotal     decimal.Decimal `json:"raw_total"`
	LedgerTotal  decimal.Decimal `json:"ledger_total"`
	Difference   decimal.Decimal `json:"difference"`
	IsConsistent bool            `json:"is_consistent"`
}

// ExpenseConsistencyFromDomain converts the comparison to response.
func ExpenseConsistencyFromDomain(c *domain.ExpenseConsistency) *ExpenseConsistencyResponse {
	return &ExpenseConsistencyResponse{
		DateFrom:     FormatDate(c.DateFrom),
		DateTo:       FormatDate(c.DateTo),
		RawTotal:     c.RawTotal,
		LedgerTotal:  c.LedgerTotal,
		Difference:   c.Difference,
		IsConsistent: c.IsConsistent,
	}
}

// TrialBalanceRowResponse is one account of a trial balance.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"account_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse lists every account's position as of a date.
type TrialBalanceResponse struct {
	AsOf         string                     `json:"as_of"`
	Rows         []*TrialBalanceRowResponse `json:"rows"`
	TotalDebits  decimal.Decimal            `json:"total_debits"`
	TotalCredits decimal.Decimal            `json:"total_credits"`
}

// TrialBalanceFromDomain converts trial balance rows to response.
func TrialBalanceFromDomain(asOf time.Time, rows []*domain.TrialBalanceRow) *TrialBalanceResponse {
	resp := &TrialBalanceResponse{
		AsOf:         FormatDate(asOf),
		Rows:         make([]*TrialBalanceRowResponse, len(rows)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for i, r := range rows {
		resp.Rows[i] = &TrialBalanceRowResponse{
			AccountID:   r.AccountID,
			Code:        r.Code,
			Name:        r.Name,
			Type:        string(r.Type),
			TotalDebit:  r.TotalDebit,
			TotalCredit: r.TotalCredit,
			Balance:     r.Balance,
		}
		resp.TotalDebits = resp.TotalDebits.Add(r.TotalDebit)
		resp.TotalCredits = resp.TotalCredits.Add(r.TotalCredit)
	}
	return resp
}

// LedgerConsistencyResponse is the ledger-wide debit/credit check.
type LedgerConsistencyResponse struct {
	Status            string          `json:"status"`
	TotalDebits       decimal.Decimal `json:"total_debits"`
	TotalCredits      decimal.Decimal `json:"total_credits"`
	Difference        decimal.Decimal `json:"difference"`
	UnbalancedEntries []string        `json:"unbalanced_entries"`
	IsConsistent      bool            `json:"is_consistent"`
	CheckedAt         time.Time       `json:"checked_at"`
}

// LedgerConsistencyFromUseCase converts the check result to response.
func LedgerConsistencyFromUseCase(c *usecase.LedgerConsistency) *LedgerConsistencyResponse {
	status := "consistent"
	if !c.IsConsistent {
		status = "inconsistent"
	}
	unbalanced := c.UnbalancedEntries
	if unbalanced == nil {
		unbalanced = []string{}
	}
	return &LedgerConsistencyResponse{
		Status:            status,
		TotalDebits:       c.TotalDebits,
		TotalCredits:      c.TotalCredits,
		Difference:        c.Difference,
		UnbalancedEntries: unbalanced,
		IsConsistent:      c.IsConsistent,
		CheckedAt:         c.CheckedAt,
	}
}

// SalePostingResponse is returned for sale and refund postings.
type SalePostingResponse struct {
	SaleID         string `json:"sale_id"`
	JournalEntryID string `json:"journal_entry_id"`
	Reference      string `json:"reference"`
	AlreadyPosted  bool   `json:"already_posted"`
}

// SalePostingFromUseCase converts a posting result to response.
func SalePostingFromUseCase(p *usecase.SalePosting) *SalePostingResponse {
	return &SalePostingResponse{
		SaleID:         p.SaleID,
		JournalEntryID: p.JournalEntryID,
		Reference:      p.Reference,
		AlreadyPosted:  p.AlreadyPosted,
	}
}

// StatementLineResponse is one account on a financial statement.
type StatementLineResponse struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

func statementLines(lines []domain.StatementLine) []StatementLineResponse {
	resp := make([]StatementLineResponse, len(lines))
	for i, l := range lines {
		resp[i] = StatementLineResponse{Code: l.Code, Name: l.Name, Type: string(l.Type), Amount: l.Amount}
	}
	return resp
}

// ProfitAndLossResponse is the income statement for a date range.
type ProfitAndLossResponse struct {
	DateFrom  string                  `json:"date_from"`
	DateTo    string                  `json:"date_to"`
	Revenue   decimal.Decimal         `json:"revenue"`
	Expenses  decimal.Decimal         `json:"expenses"`
	NetProfit decimal.Decimal         `json:"net_profit"`
	MarginPct decimal.Decimal         `json:"margin_pct"`
	Lines     []StatementLineResponse `json:"lines"`
}

// ProfitAndLossFromDomain converts an income statement to response.
func ProfitAndLossFromDomain(p *domain.ProfitAndLoss) *ProfitAndLossResponse {
	return &ProfitAndLossResponse{
		DateFrom:  FormatDate(p.DateFrom),
		DateTo:    FormatDate(p.DateTo),
		Revenue:   p.Revenue,
		Expenses:  p.Expenses,
		NetProfit: p.NetProfit,
		MarginPct: p.MarginPct,
		Lines:     statementLines(p.Lines),
	}
}

// BalanceSheetResponse is the ledger's position at a date.
type BalanceSheetResponse struct {
	AsOf                 string                  `json:"as_of"`
	Assets               decimal.Decimal         `json:"assets"`
	Liabilities          decimal.Decimal         `json:"liabilities"`
	EquityAccounts       decimal.Decimal         `json:"equity_accounts"`
	NetIncome            decimal.Decimal         `json:"net_income"`
	Equity               decimal.Decimal         `json:"equity"`
	LiabilitiesAndEquity decimal.Decimal         `json:"liabilities_and_equity"`
	Difference           decimal.Decimal         `json:"difference"`
	Lines                []StatementLineResponse `json:"lines"`
}

// BalanceSheetFromDomain converts a balance sheet to response.
func BalanceSheetFromDomain(b *domain.BalanceSheet) *BalanceSheetResponse {
	return &BalanceSheetResponse{
		AsOf:                 FormatDate(b.AsOf),
		Assets:               b.Assets,
		Liabilities:          b.Liabilities,
		EquityAccounts:       b.EquityAccounts,
		NetIncome:            b.NetIncome,
		Equity:               b.Equity,
		LiabilitiesAndEquity: b.LiabilitiesAndEquity,
		Difference:           b.Difference,
		Lines:                statementLines(b.Lines),
	}
}

// ErrorResponse represents an error in API responses. DebitSum and
// CreditSum are set for unbalanced journal entries.
type ErrorResponse struct {
	Error     string           `json:"error"`
	Message   string           `json:"message,omitempty"`
	DebitSum  *decimal.Decimal `json:"debit_sum,omitempty"`
	CreditSum *decimal.Decimal `json:"credit_sum,omitempty"`
}

// NewErrorResponse builds an error body, attaching the sums of an
// unbalanced entry when err carries them.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Error: message}
	if err == nil {
		return resp
	}
	resp.Message = err.Error()

	var unbalanced *domain.UnbalancedError
	if errors.As(err, &unbalanced) {
		debit, credit := unbalanced.DebitSum, unbalanced.CreditSum
		resp.DebitSum = &debit
		resp.CreditSum = &credit
	}
	return resp
}
