package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/saku/internal/domain"
	"github.com/iho/saku/internal/usecase"
)

// SessionResponse represents a session in API responses.
type SessionResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionFromDomain converts a domain session to a response.
func SessionFromDomain(s domain.Session) *SessionResponse {
	return &SessionResponse{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
	}
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	Index       int             `json:"index"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(index int, tx domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		Index:       index,
		Date:        tx.Date.Format(DateLayout),
		Description: tx.Description,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Type:        string(tx.Type),
	}
}

// TransactionsFromDomain converts transactions to responses, indexed by
// ledger position.
func TransactionsFromDomain(txs []domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, tx := range txs {
		result[i] = TransactionFromDomain(i, tx)
	}
	return result
}

// SummaryResponse represents a session summary in API responses.
type SummaryResponse struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	Balance          decimal.Decimal `json:"balance"`
	Health           string          `json:"health"`
	TransactionCount int             `json:"transaction_count"`
}

// SummaryFromUseCase converts a summary output to a response.
func SummaryFromUseCase(out usecase.SummaryOutput) *SummaryResponse {
	return &SummaryResponse{
		TotalIncome:      out.TotalIncome,
		TotalExpenses:    out.TotalExpenses,
		Balance:          out.Balance,
		Health:           string(out.Health),
		TransactionCount: out.TransactionCount,
	}
}

// ExpensesByCategoryResponse represents summed expenses per category.
type ExpensesByCategoryResponse struct {
	Expenses map[string]decimal.Decimal `json:"expenses"`
}

// ExpensesByCategoryFromDomain converts category totals to a response.
func ExpensesByCategoryFromDomain(totals map[string]decimal.Decimal) *ExpensesByCategoryResponse {
	return &ExpensesByCategoryResponse{Expenses: totals}
}

// BalancePointResponse represents one point of the balance history.
type BalancePointResponse struct {
	Date    string          `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// BalancePointsFromDomain converts the cumulative series to responses.
func BalancePointsFromDomain(points []domain.BalancePoint) []*BalancePointResponse {
	result := make([]*BalancePointResponse, len(points))
	for i, p := range points {
		result[i] = &BalancePointResponse{
			Date:    p.Date.Format(DateLayout),
			Balance: p.Balance,
		}
	}
	return result
}

// CategoryStatResponse represents spending statistics for one category.
type CategoryStatResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Average  decimal.Decimal `json:"average"`
	Share    decimal.Decimal `json:"share"`
}

// ExpenseStatsResponse represents expense statistics in API responses.
type ExpenseStatsResponse struct {
	Total       decimal.Decimal         `json:"total"`
	TopCategory string                  `json:"top_category,omitempty"`
	Categories  []*CategoryStatResponse `json:"categories"`
}

// ExpenseStatsFromDomain converts domain stats to a response.
func ExpenseStatsFromDomain(stats domain.ExpenseStats) *ExpenseStatsResponse {
	categories := make([]*CategoryStatResponse, len(stats.Categories))
	for i, c := range stats.Categories {
		categories[i] = &CategoryStatResponse{
			Category: c.Category,
			Total:    c.Total,
			Average:  c.Average,
			Share:    c.Share,
		}
	}
	return &ExpenseStatsResponse{
		Total:       stats.Total,
		TopCategory: stats.TopCategory,
		Categories:  categories,
	}
}

// BudgetComparisonResponse represents one category's budget verdict.
type BudgetComparisonResponse struct {
	Category string          `json:"category"`
	Budget   decimal.Decimal `json:"budget"`
	Actual   decimal.Decimal `json:"actual"`
	Status   string          `json:"status"`
}

// BudgetComparisonsFromDomain converts budget comparisons to responses.
func BudgetComparisonsFromDomain(comparisons []domain.BudgetComparison) []*BudgetComparisonResponse {
	result := make([]*BudgetComparisonResponse, len(comparisons))
	for i, c := range comparisons {
		result[i] = &BudgetComparisonResponse{
			Category: c.Category,
			Budget:   c.Budget,
			Actual:   c.Actual,
			Status:   string(c.Status),
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
