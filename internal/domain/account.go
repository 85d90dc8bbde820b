package domain

import (
	"time"
)

// AccountType is the fixed classification of a chart-of-accounts entry.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

var validAccountTypes = map[AccountType]bool{
	AccountTypeAsset:     true,
	AccountTypeLiability: true,
	AccountTypeEquity:    true,
	AccountTypeRevenue:   true,
	AccountTypeExpense:   true,
}

// IsValid reports whether t is one of the five ledger account types.
func (t AccountType) IsValid() bool {
	return validAccountTypes[t]
}

// Well-known account codes used by auto-generated entries.
const (
	AccountCodeCash             = "1000"
	AccountCodeBank             = "1100"
	AccountCodeTaxPayable       = "2100"
	AccountCodeRevenue          = "4000"
	AccountCodeOperatingExpense = "6000"
)

// Account represents a chart-of-accounts entry.
// Type is assigned once at creation and never re-evaluated.
type Account struct {
	ID        string
	Code      string
	Name      string
	Type      AccountType
	IsActive  bool
	CreatedAt time.Time
}
