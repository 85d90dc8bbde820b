package domain

import (
	"fmt"
	"strings"
)

// Classifier infers the type of an account from its code when the account
// is created for the first time.
type Classifier struct {
	types         map[string]AccountType
	fallback      AccountType
	rejectUnknown bool
}

// ClassifierConfig configures a Classifier.
type ClassifierConfig struct {
	// Types maps exact account codes to their type.
	Types map[string]AccountType
	// Fallback is used for codes missing from Types. Defaults to EXPENSE.
	Fallback AccountType
	// RejectUnknown makes Classify fail for codes missing from Types
	// instead of applying Fallback.
	RejectUnknown bool
}

// DefaultAccountTypes is the built-in code to type table.
func DefaultAccountTypes() map[string]AccountType {
	return map[string]AccountType{
		"1000": AccountTypeAsset,
		"1100": AccountTypeAsset,
		"1200": AccountTypeAsset,
		"1300": AccountTypeAsset,
		"2000": AccountTypeLiability,
		"2100": AccountTypeLiability,
		"4000": AccountTypeRevenue,
		"4100": AccountTypeRevenue,
	}
}

// NewClassifier validates cfg and builds a Classifier.
func NewClassifier(cfg ClassifierConfig) (*Classifier, error) {
	fallback := cfg.Fallback
	if fallback == "" {
		fallback = AccountTypeExpense
	}
	if !fallback.IsValid() {
		return nil, fmt.Errorf("invalid fallback account type %q", fallback)
	}

	types := make(map[string]AccountType, len(cfg.Types))
	for code, t := range cfg.Types {
		code = strings.TrimSpace(code)
		if code == "" {
			return nil, fmt.Errorf("%w: empty code in classification table", ErrInvalidAccountCode)
		}
		if !t.IsValid() {
			return nil, fmt.Errorf("invalid account type %q for code %s", t, code)
		}
		types[code] = t
	}

	return &Classifier{
		types:         types,
		fallback:      fallback,
		rejectUnknown: cfg.RejectUnknown,
	}, nil
}

// DefaultClassifier returns the classifier with the built-in table and an
// EXPENSE fallback.
func DefaultClassifier() *Classifier {
	c, _ := NewClassifier(ClassifierConfig{Types: DefaultAccountTypes()})
	return c
}

// Classify returns the type for code.
func (c *Classifier) Classify(code string) (AccountType, error) {
	if t, ok := c.types[code]; ok {
		return t, nil
	}
	if c.rejectUnknown {
		return "", fmt.Errorf("%w: %s", ErrUnknownAccountCode, code)
	}
	return c.fallback, nil
}
