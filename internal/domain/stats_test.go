package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewExpenseStats(t *testing.T) {
	txs := []Transaction{
		mustTransaction(t, "2024-01-01", "groceries", "200", "Food", TypeExpense),
		mustTransaction(t, "2024-01-02", "dinner", "100", "Food", TypeExpense),
		mustTransaction(t, "2024-01-03", "bus", "50", "Transport", TypeExpense),
		mustTransaction(t, "2024-01-04", "salary", "9999", "Salary", TypeIncome),
	}

	stats := NewExpenseStats(txs)

	if !stats.Total.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("total = %s, want 350", stats.Total)
	}
	if stats.TopCategory != "Food" {
		t.Fatalf("top category = %q, want Food", stats.TopCategory)
	}
	if len(stats.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(stats.Categories))
	}

	food := stats.Categories[0]
	if food.Category != "Food" {
		t.Fatalf("categories not ordered by total: %+v", stats.Categories)
	}
	if !food.Total.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("Food total = %s, want 300", food.Total)
	}
	if !food.Average.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("Food average = %s, want 150", food.Average)
	}
	if !food.Share.Equal(decimal.RequireFromString("85.71")) {
		t.Fatalf("Food share = %s, want 85.71", food.Share)
	}

	transport := stats.Categories[1]
	if !transport.Share.Equal(decimal.RequireFromString("14.29")) {
		t.Fatalf("Transport share = %s, want 14.29", transport.Share)
	}
}

func TestNewExpenseStats_NoExpenses(t *testing.T) {
	stats := NewExpenseStats([]Transaction{
		mustTransaction(t, "2024-01-01", "salary", "5000", "Salary", TypeIncome),
	})

	if !stats.Total.IsZero() {
		t.Fatalf("total = %s, want 0", stats.Total)
	}
	if len(stats.Categories) != 0 || stats.TopCategory != "" {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
}

func TestNewExpenseStats_TieBrokenByName(t *testing.T) {
	stats := NewExpenseStats([]Transaction{
		mustTransaction(t, "2024-01-01", "", "100", "Transport", TypeExpense),
		mustTransaction(t, "2024-01-02", "", "100", "Bills", TypeExpense),
	})

	if stats.TopCategory != "Bills" {
		t.Fatalf("equal totals must resolve alphabetically, got %q", stats.TopCategory)
	}
}
