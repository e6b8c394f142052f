package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryStat aggregates the expenses of one category. Share is the
// category's percentage of all expenses, rounded to two decimal places.
type CategoryStat struct {
	Category string
	Total    decimal.Decimal
	Average  decimal.Decimal
	Share    decimal.Decimal
}

// ExpenseStats summarizes spending across categories.
type ExpenseStats struct {
	Total       decimal.Decimal
	Categories  []CategoryStat
	TopCategory string
}

// NewExpenseStats computes per-category totals, averages and percentage
// shares over the expense transactions in txs. Categories are ordered by
// total descending, ties broken by name, and TopCategory names the first.
func NewExpenseStats(txs []Transaction) ExpenseStats {
	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	grand := decimal.Zero

	for _, tx := range txs {
		if tx.Type != TypeExpense {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
		counts[tx.Category]++
		grand = grand.Add(tx.Amount)
	}

	if len(totals) == 0 {
		return ExpenseStats{Total: decimal.Zero}
	}

	hundred := decimal.NewFromInt(100)
	stats := ExpenseStats{
		Total:      grand,
		Categories: make([]CategoryStat, 0, len(totals)),
	}
	for category, total := range totals {
		stats.Categories = append(stats.Categories, CategoryStat{
			Category: category,
			Total:    total,
			Average:  total.Div(decimal.NewFromInt(int64(counts[category]))),
			Share:    total.Mul(hundred).Div(grand).Round(2),
		})
	}

	sort.Slice(stats.Categories, func(i, j int) bool {
		a, b := stats.Categories[i], stats.Categories[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Category < b.Category
	})
	stats.TopCategory = stats.Categories[0].Category

	return stats
}
