package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementLine is one account's contribution to a financial statement.
// Amount is signed so that the account's normal balance is positive.
type StatementLine struct {
	Code   string
	Name   string
	Type   AccountType
	Amount decimal.Decimal
}

// ProfitAndLoss is the ledger's income statement for a date range.
type ProfitAndLoss struct {
	DateFrom  time.Time
	DateTo    time.Time
	Revenue   decimal.Decimal
	Expenses  decimal.Decimal
	NetProfit decimal.Decimal
	MarginPct decimal.Decimal
	Lines     []StatementLine
}

// NewProfitAndLoss derives the period's movement on revenue and expense
// accounts from the trial balances at the day before from (opening) and
// at to (closing).
func NewProfitAndLoss(from, to time.Time, opening, closing []*TrialBalanceRow) *ProfitAndLoss {
	before := make(map[string]decimal.Decimal, len(opening))
	for _, row := range opening {
		before[row.AccountID] = row.Balance
	}

	p := &ProfitAndLoss{
		DateFrom:  from,
		DateTo:    to,
		Revenue:   decimal.Zero,
		Expenses:  decimal.Zero,
		MarginPct: decimal.Zero,
		Lines:     []StatementLine{},
	}
	for _, row := range closing {
		movement := row.Balance.Sub(before[row.AccountID])
		var amount decimal.Decimal
		switch row.Type {
		case AccountTypeRevenue:
			amount = movement.Neg()
			p.Revenue = p.Revenue.Add(amount)
		case AccountTypeExpense:
			amount = movement
			p.Expenses = p.Expenses.Add(amount)
		default:
			continue
		}
		if amount.IsZero() {
			continue
		}
		p.Lines = append(p.Lines, StatementLine{Code: row.Code, Name: row.Name, Type: row.Type, Amount: amount})
	}

	p.NetProfit = p.Revenue.Sub(p.Expenses)
	if p.Revenue.IsPositive() {
		p.MarginPct = p.NetProfit.Div(p.Revenue).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return p
}

// BalanceSheet is the ledger's position at a date. Equity includes the
// net income not yet closed into equity accounts.
type BalanceSheet struct {
	AsOf                 time.Time
	Assets               decimal.Decimal
	Liabilities          decimal.Decimal
	EquityAccounts       decimal.Decimal
	NetIncome            decimal.Decimal
	Equity               decimal.Decimal
	LiabilitiesAndEquity decimal.Decimal
	// Difference is Assets less LiabilitiesAndEquity. It equals the sum of
	// the cent-level differences entries were allowed to post with.
	Difference decimal.Decimal
	Lines      []StatementLine
}

// NewBalanceSheet groups a trial balance by account type.
func NewBalanceSheet(asOf time.Time, rows []*TrialBalanceRow) *BalanceSheet {
	b := &BalanceSheet{
		AsOf:           asOf,
		Assets:         decimal.Zero,
		Liabilities:    decimal.Zero,
		EquityAccounts: decimal.Zero,
		NetIncome:      decimal.Zero,
		Lines:          []StatementLine{},
	}
	for _, row := range rows {
		switch row.Type {
		case AccountTypeAsset:
			b.Assets = b.Assets.Add(row.Balance)
			b.addLine(row, row.Balance)
		case AccountTypeLiability:
			b.Liabilities = b.Liabilities.Sub(row.Balance)
			b.addLine(row, row.Balance.Neg())
		case AccountTypeEquity:
			b.EquityAccounts = b.EquityAccounts.Sub(row.Balance)
			b.addLine(row, row.Balance.Neg())
		case AccountTypeRevenue, AccountTypeExpense:
			b.NetIncome = b.NetIncome.Sub(row.Balance)
		}
	}

	b.Equity = b.EquityAccounts.Add(b.NetIncome)
	b.LiabilitiesAndEquity = b.Liabilities.Add(b.Equity)
	b.Difference = b.Assets.Sub(b.LiabilitiesAndEquity)
	return b
}

func (b *BalanceSheet) addLine(row *TrialBalanceRow, amount decimal.Decimal) {
	if amount.IsZero() {
		return
	}
	b.Lines = append(b.Lines, StatementLine{Code: row.Code, Name: row.Name, Type: row.Type, Amount: amount})
}
