package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/usecase"
)

func TestAccountFromDomain(t *testing.T) {
	now := time.Now()
	account := &domain.Account{
		ID:        "acc-1",
		Code:      "1000",
		Name:      "1000",
		Type:      domain.AccountTypeAsset,
		IsActive:  true,
		CreatedAt: now,
	}

	resp := AccountFromDomain(account)
	if resp.ID != account.ID || resp.Type != "ASSET" || !resp.IsActive {
		t.Fatalf("unexpected account response: %+v", resp)
	}

	list := AccountsFromDomain([]*domain.Account{account})
	if len(list) != 1 || list[0].Code != "1000" {
		t.Fatalf("AccountsFromDomain returned %+v", list)
	}
}

func TestJournalEntryFromDomain(t *testing.T) {
	reconciled := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	entry := &domain.JournalEntry{
		ID:          "je-1",
		Description: "cash sale",
		EntryDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount: decimal.RequireFromString("500"),
		CreatedBy:   "user-1",
		Lines: []*domain.JournalLine{
			{ID: "l1", AccountID: "cash", DebitAmount: decimal.RequireFromString("500"), IsReconciled: true, ReconciledDate: &reconciled},
			{ID: "l2", AccountID: "revenue", CreditAmount: decimal.RequireFromString("500")},
		},
	}

	resp := JournalEntryFromDomain(entry)
	if resp.EntryDate != "2026-10-01" || len(resp.Lines) != 2 {
		t.Fatalf("unexpected entry response: %+v", resp)
	}
	if resp.Lines[0].ReconciledDate == nil || *resp.Lines[0].ReconciledDate != "2026-10-15" {
		t.Fatalf("expected reconciled date on first line, got %+v", resp.Lines[0])
	}
	if resp.Lines[1].ReconciledDate != nil {
		t.Fatalf("unexpected reconciled date on second line")
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if decoded["total_amount"] != "500" {
		t.Fatalf("amounts must be encoded as strings, got %v", decoded["total_amount"])
	}
}

func TestReconciliationFromDomain(t *testing.T) {
	rec := &domain.Reconciliation{
		ID:                 "rec-1",
		AccountID:          "cash",
		ReconciliationDate: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		StatementBalance:   decimal.RequireFromString("760"),
		BookBalance:        decimal.RequireFromString("750"),
	}

	resp := ReconciliationFromDomain(rec)
	if !resp.Variance.Equal(decimal.RequireFromString("10")) || resp.IsMatched {
		t.Fatalf("unexpected reconciliation response: %+v", resp)
	}
}

func TestTrialBalanceFromDomain(t *testing.T) {
	rows := []*domain.TrialBalanceRow{
		{Code: "1000", Type: domain.AccountTypeAsset, TotalDebit: decimal.RequireFromString("1000"), TotalCredit: decimal.RequireFromString("400"), Balance: decimal.RequireFromString("600")},
		{Code: "4000", Type: domain.AccountTypeRevenue, TotalDebit: decimal.Zero, TotalCredit: decimal.RequireFromString("1000"), Balance: decimal.RequireFromString("-1000")},
		{Code: "6000", Type: domain.AccountTypeExpense, TotalDebit: decimal.RequireFromString("400"), TotalCredit: decimal.Zero, Balance: decimal.RequireFromString("400")},
	}

	resp := TrialBalanceFromDomain(time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC), rows)
	if resp.AsOf != "2026-10-31" || len(resp.Rows) != 3 {
		t.Fatalf("unexpected trial balance: %+v", resp)
	}
	if !resp.TotalDebits.Equal(resp.TotalCredits) {
		t.Fatalf("totals must agree: %s vs %s", resp.TotalDebits, resp.TotalCredits)
	}
}

func TestLedgerConsistencyFromUseCase(t *testing.T) {
	resp := LedgerConsistencyFromUseCase(&usecase.LedgerConsistency{
		TotalDebits:       decimal.RequireFromString("10"),
		TotalCredits:      decimal.RequireFromString("9.5"),
		Difference:        decimal.RequireFromString("0.5"),
		UnbalancedEntries: []string{"je-1"},
	})
	if resp.Status != "inconsistent" || resp.IsConsistent {
		t.Fatalf("unexpected consistency response: %+v", resp)
	}
	if len(resp.UnbalancedEntries) != 1 || resp.UnbalancedEntries[0] != "je-1" {
		t.Fatalf("expected the offending entry id, got %v", resp.UnbalancedEntries)
	}

	ok := LedgerConsistencyFromUseCase(&usecase.LedgerConsistency{IsConsistent: true})
	if ok.Status != "consistent" || ok.UnbalancedEntries == nil {
		t.Fatalf("expected consistent status with an empty entry list, got %+v", ok)
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("invalid journal entry", fmt.Errorf("post: %w", &domain.UnbalancedError{
		DebitSum:  decimal.RequireFromString("998"),
		CreditSum: decimal.RequireFromString("1000"),
	}))
	if resp.DebitSum == nil || resp.CreditSum == nil {
		t.Fatalf("expected sums on unbalanced error, got %+v", resp)
	}
	if !resp.DebitSum.Equal(decimal.RequireFromString("998")) || !resp.CreditSum.Equal(decimal.RequireFromString("1000")) {
		t.Fatalf("unexpected sums: %s / %s", resp.DebitSum, resp.CreditSum)
	}

	plain := NewErrorResponse("not found", errors.New("journal entry not found"))
	if plain.DebitSum != nil || plain.Message != "journal entry not found" {
		t.Fatalf("unexpected plain error response: %+v", plain)
	}
}

func TestStatementsFromDomain(t *testing.T) {
	asOf := time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)
	sheet := domain.NewBalanceSheet(asOf, []*domain.TrialBalanceRow{
		{AccountID: "cash", Code: "1000", Name: "Cash", Type: domain.AccountTypeAsset, Balance: decimal.RequireFromString("113")},
		{AccountID: "tax", Code: "2100", Name: "Tax payable", Type: domain.AccountTypeLiability, Balance: decimal.RequireFromString("-13")},
		{AccountID: "rev", Code: "4000", Name: "Revenue", Type: domain.AccountTypeRevenue, Balance: decimal.RequireFromString("-100")},
	})

	bs := BalanceSheetFromDomain(sheet)
	if bs.AsOf != "2026-10-31" || !bs.NetIncome.Equal(decimal.NewFromInt(100)) || !bs.Difference.IsZero() {
		t.Fatalf("unexpected balance sheet response: %+v", bs)
	}
	if len(bs.Lines) != 2 || bs.Lines[1].Type != "LIABILITY" || !bs.Lines[1].Amount.Equal(decimal.NewFromInt(13)) {
		t.Fatalf("unexpected balance sheet lines: %+v", bs.Lines)
	}

	pl := ProfitAndLossFromDomain(domain.NewProfitAndLoss(asOf.AddDate(0, 0, -30), asOf, nil, []*domain.TrialBalanceRow{
		{AccountID: "rev", Code: "4000", Type: domain.AccountTypeRevenue, Balance: decimal.RequireFromString("-100")},
	}))
	data, err := json.Marshal(pl)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["net_profit"] != "100" || decoded["date_from"] != "2026-10-01" {
		t.Fatalf("unexpected profit and loss JSON: %s", data)
	}
}

func TestSalePostingFromUseCase(t *testing.T) {
	resp := SalePostingFromUseCase(&usecase.SalePosting{SaleID: "S-1", JournalEntryID: "je-1", Reference: "SALE-S-1", AlreadyPosted: true})
	if resp.Reference != "SALE-S-1" || !resp.AlreadyPosted {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
