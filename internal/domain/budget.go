package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// BudgetStatus reports how actual spending compares to a budget.
type BudgetStatus string

const (
	BudgetStatusOver  BudgetStatus = "over_budget"
	BudgetStatusUnder BudgetStatus = "under_budget"
)

// BudgetComparison is the verdict for one category.
type BudgetComparison struct {
	Category string
	Budget   decimal.Decimal
	Actual   decimal.Decimal
	Status   BudgetStatus
}

// CompareBudgets evaluates actual spending against per-category budgets.
// A budget of zero or less counts as not configured and yields no
// comparison. Spending strictly above the budget is over, anything else
// under. Results are sorted by category.
func CompareBudgets(actual, budgets map[string]decimal.Decimal) []BudgetComparison {
	out := make([]BudgetComparison, 0, len(budgets))
	for category, budget := range budgets {
		if !budget.IsPositive() {
			continue
		}

		spent := actual[category]
		status := BudgetStatusUnder
		if spent.GreaterThan(budget) {
			status = BudgetStatusOver
		}

		out = append(out, BudgetComparison{
			Category: category,
			Budget:   budget,
			Actual:   spent,
			Status:   status,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
