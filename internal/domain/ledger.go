package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// BalancePoint is one element of the cumulative balance series: the
// running balance immediately after the transaction dated Date.
type BalancePoint struct {
	Date    time.Time
	Balance decimal.Decimal
}

// BalanceHealth classifies an overall balance for display.
type BalanceHealth string

const (
	BalanceNegative BalanceHealth = "negative"
	BalanceHealthy  BalanceHealth = "healthy"
	BalanceStable   BalanceHealth = "stable"
)

// healthyBalanceThreshold is the balance above which the ledger is
// reported as healthy rather than merely stable.
var healthyBalanceThreshold = decimal.NewFromInt(1000)

// AssessBalance classifies a balance: below zero is negative, above the
// healthy threshold is healthy, anything in between is stable.
func AssessBalance(balance decimal.Decimal) BalanceHealth {
	switch {
	case balance.IsNegative():
		return BalanceNegative
	case balance.GreaterThan(healthyBalanceThreshold):
		return BalanceHealthy
	default:
		return BalanceStable
	}
}

// Ledger holds an ordered sequence of transactions. Insertion order is
// entry order, not date order, and an index is a positional handle: a
// delete shifts every later transaction down by one.
//
// A Ledger does no internal locking. It is owned by a single session;
// hosts that expose one ledger to concurrent callers must serialize
// access themselves.
type Ledger struct {
	transactions []Transaction
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add validates tx and appends it to the end of the sequence.
func (l *Ledger) Add(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	l.transactions = append(l.transactions, tx)
	return nil
}

// Delete removes the transaction at index and returns it. All higher
// indices shift down by one. The ledger is unchanged when the index is
// out of range.
func (l *Ledger) Delete(index int) (Transaction, error) {
	if index < 0 || index >= len(l.transactions) {
		return Transaction{}, ErrIndexOutOfRange
	}
	tx := l.transactions[index]
	l.transactions = append(l.transactions[:index], l.transactions[index+1:]...)
	return tx, nil
}

// Clear removes all transactions.
func (l *Ledger) Clear() {
	l.transactions = nil
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	return len(l.transactions)
}

// Transactions returns a copy of the sequence in insertion order.
func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// TotalIncome sums the amounts of all income transactions.
func (l *Ledger) TotalIncome() decimal.Decimal {
	return l.sumByType(TypeIncome)
}

// TotalExpenses sums the amounts of all expense transactions.
func (l *Ledger) TotalExpenses() decimal.Decimal {
	return l.sumByType(TypeExpense)
}

// Balance returns TotalIncome minus TotalExpenses.
func (l *Ledger) Balance() decimal.Decimal {
	return l.TotalIncome().Sub(l.TotalExpenses())
}

func (l *Ledger) sumByType(txType TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l.transactions {
		if tx.Type == txType {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// ExpensesByCategory sums expense amounts per category. Only categories
// with at least one expense appear in the result.
func (l *Ledger) ExpensesByCategory() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, tx := range l.transactions {
		if tx.Type != TypeExpense {
			continue
		}
		out[tx.Category] = out[tx.Category].Add(tx.Amount)
	}
	return out
}

// CumulativeBalanceSeries returns one point per transaction: transactions
// sorted by date ascending, insertion order preserved for equal dates,
// with the running signed balance after each.
func (l *Ledger) CumulativeBalanceSeries() []BalancePoint {
	if len(l.transactions) == 0 {
		return nil
	}

	ordered := l.Transactions()
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	points := make([]BalancePoint, len(ordered))
	running := decimal.Zero
	for i, tx := range ordered {
		running = running.Add(tx.Signed())
		points[i] = BalancePoint{Date: tx.Date, Balance: running}
	}
	return points
}
