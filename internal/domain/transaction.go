package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction as money in or money out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// ParseTransactionType converts free-form input into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeIncome:
		return TypeIncome, nil
	case TypeExpense:
		return TypeExpense, nil
	default:
		return "", ErrInvalidType
	}
}

// Transaction represents a single recorded financial event. It is never
// mutated in place; a ledger only appends and removes whole transactions.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    string
	Type        TransactionType
}

// NewTransaction builds a transaction and enforces the construction
// invariants. The amount check runs before the type check. Category is an
// open string: unknown categories are accepted and simply will not match
// any budget lookup.
func NewTransaction(date time.Time, description string, amount decimal.Decimal, category string, txType TransactionType) (Transaction, error) {
	tx := Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Category:    category,
		Type:        txType,
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// Validate checks that the amount is strictly positive and the type is
// one of income/expense.
func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return ErrInvalidType
	}
	return nil
}

// Signed returns the amount with its balance effect applied: positive for
// income, negative for expense.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
