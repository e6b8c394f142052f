package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/saku/internal/domain"
	"github.com/iho/saku/internal/usecase"
)

// DateLayout is the wire format for transaction dates.
const DateLayout = "2006-01-02"

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Type        string `json:"type"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() (usecase.AddTransactionInput, error) {
	date, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return usecase.AddTransactionInput{}, err
	}

	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return usecase.AddTransactionInput{}, err
	}

	txType, err := domain.ParseTransactionType(r.Type)
	if err != nil {
		return usecase.AddTransactionInput{}, err
	}

	return usecase.AddTransactionInput{
		Date:        date,
		Description: r.Description,
		Amount:      amount,
		Category:    r.Category,
		Type:        txType,
	}, nil
}

// BudgetReportRequest carries per-category budgets for a budget report.
// An empty map means the server's configured defaults apply.
type BudgetReportRequest struct {
	Budgets map[string]string `json:"budgets"`
}

// ToBudgets parses the requested budgets into decimals.
func (r *BudgetReportRequest) ToBudgets() (map[string]decimal.Decimal, error) {
	if len(r.Budgets) == 0 {
		return nil, nil
	}

	budgets := make(map[string]decimal.Decimal, len(r.Budgets))
	for category, raw := range r.Budgets {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}
		budgets[category] = amount
	}
	return budgets, nil
}
