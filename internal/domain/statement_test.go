package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func tbRow(id, code string, typ AccountType, balance string) *TrialBalanceRow {
	return &TrialBalanceRow{AccountID: id, Code: code, Name: code, Type: typ, Balance: decimal.RequireFromString(balance)}
}

func TestNewProfitAndLoss(t *testing.T) {
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)

	opening := []*TrialBalanceRow{
		tbRow("cash", "1000", AccountTypeAsset, "500"),
		tbRow("rev", "4000", AccountTypeRevenue, "-800"),
		tbRow("exp", "6000", AccountTypeExpense, "300"),
	}
	closing := []*TrialBalanceRow{
		tbRow("cash", "1000", AccountTypeAsset, "1700"),
		tbRow("rev", "4000", AccountTypeRevenue, "-2800"),
		tbRow("exp", "6000", AccountTypeExpense, "1100"),
		tbRow("rent", "6100", AccountTypeExpense, "0"),
	}

	p := NewProfitAndLoss(from, to, opening, closing)

	if !p.Revenue.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected revenue 2000 for the period, got %s", p.Revenue)
	}
	if !p.Expenses.Equal(decimal.NewFromInt(800)) {
		t.Errorf("expected expenses 800 for the period, got %s", p.Expenses)
	}
	if !p.NetProfit.Equal(decimal.NewFromInt(1200)) || !p.MarginPct.Equal(decimal.NewFromInt(60)) {
		t.Errorf("unexpected profit %s margin %s", p.NetProfit, p.MarginPct)
	}
	if len(p.Lines) != 2 {
		t.Errorf("expected asset and idle accounts to be left out, got %+v", p.Lines)
	}
}

func TestNewProfitAndLoss_NoRevenue(t *testing.T) {
	p := NewProfitAndLoss(time.Time{}, time.Time{}, nil, []*TrialBalanceRow{tbRow("exp", "6000", AccountTypeExpense, "50")})

	if !p.NetProfit.Equal(decimal.NewFromInt(-50)) || !p.MarginPct.IsZero() {
		t.Fatalf("unexpected result: profit %s margin %s", p.NetProfit, p.MarginPct)
	}
}

func TestNewBalanceSheet(t *testing.T) {
	rows := []*TrialBalanceRow{
		tbRow("cash", "1000", AccountTypeAsset, "1640"),
		tbRow("bank", "1100", AccountTypeAsset, "0"),
		tbRow("tax", "2100", AccountTypeLiability, "-40"),
		tbRow("own", "3000", AccountTypeEquity, "-1500"),
		tbRow("rev", "4000", AccountTypeRevenue, "-400"),
		tbRow("exp", "6000", AccountTypeExpense, "300"),
	}

	b := NewBalanceSheet(time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC), rows)

	checks := map[string][2]decimal.Decimal{
		"assets":            {b.Assets, decimal.NewFromInt(1640)},
		"liabilities":       {b.Liabilities, decimal.NewFromInt(40)},
		"equity accounts":   {b.EquityAccounts, decimal.NewFromInt(1500)},
		"net income":        {b.NetIncome, decimal.NewFromInt(100)},
		"equity":            {b.Equity, decimal.NewFromInt(1600)},
		"liabilities+equity": {b.LiabilitiesAndEquity, decimal.NewFromInt(1640)},
	}
	for name, c := range checks {
		if !c[0].Equal(c[1]) {
			t.Errorf("%s: expected %s, got %s", name, c[1], c[0])
		}
	}
	if !b.Difference.IsZero() {
		t.Errorf("a balanced ledger must have no difference, got %s", b.Difference)
	}
	if len(b.Lines) != 3 {
		t.Errorf("expected asset, liability and equity lines without zero balances, got %+v", b.Lines)
	}
}
