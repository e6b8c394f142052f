// Package budget loads default category budgets from a TOML file.
//
// The file maps categories to amounts, kept as strings so values stay
// exact decimals:
//
//	[budgets]
//	Food = "500"
//	Transport = "150"
package budget

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

type budgetsFile struct {
	Budgets map[string]string `toml:"budgets"`
}

// LoadFile reads default budgets from the TOML file at path.
// An empty path means no defaults and no error.
func LoadFile(path string) (map[string]decimal.Decimal, error) {
	if path == "" {
		return nil, nil
	}

	var raw budgetsFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to read budgets file: %w", err)
	}

	budgets := make(map[string]decimal.Decimal, len(raw.Budgets))
	for category, amount := range raw.Budgets {
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid budget for category %q: %w", category, err)
		}

		budgets[category] = value
	}

	return budgets, nil
}
