package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iho/gobooks/internal/domain"
)

// ChartOfAccounts is the YAML form of the account classification table.
//
//	fallback: EXPENSE
//	reject_unknown: false
//	accounts:
//	  - code: "1000"
//	    type: ASSET
type ChartOfAccounts struct {
	Fallback      string         `yaml:"fallback"`
	RejectUnknown bool           `yaml:"reject_unknown"`
	Accounts      []ChartAccount `yaml:"accounts"`
}

// ChartAccount maps one account code to its type.
type ChartAccount struct {
	Code string `yaml:"code"`
	Type string `yaml:"type"`
}

// LoadChartOfAccounts reads a chart-of-accounts file.
func LoadChartOfAccounts(path string) (*ChartOfAccounts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}

	var chart ChartOfAccounts
	if err := yaml.Unmarshal(data, &chart); err != nil {
		return nil, fmt.Errorf("parsing chart of accounts: %w", err)
	}

	return &chart, nil
}

// Classifier builds the classifier described by the chart.
func (c *ChartOfAccounts) Classifier() (*domain.Classifier, error) {
	types := make(map[string]domain.AccountType, len(c.Accounts))
	for _, a := range c.Accounts {
		if _, dup := types[a.Code]; dup {
			return nil, fmt.Errorf("duplicate account code %q in chart of accounts", a.Code)
		}
		types[a.Code] = domain.AccountType(a.Type)
	}

	return domain.NewClassifier(domain.ClassifierConfig{
		Types:         types,
		Fallback:      domain.AccountType(c.Fallback),
		RejectUnknown: c.RejectUnknown,
	})
}

// Classifier returns the classifier from ChartOfAccountsFile, or the
// built-in one when no file is configured.
func (c *Config) Classifier() (*domain.Classifier, error) {
	if c.ChartOfAccountsFile == "" {
		return domain.DefaultClassifier(), nil
	}

	chart, err := LoadChartOfAccounts(c.ChartOfAccountsFile)
	if err != nil {
		return nil, err
	}

	return chart.Classifier()
}
