package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/iho/saku/internal/domain"
)

var (
	// ErrInconsistentLedger is returned when the running balance series
	// disagrees with the ledger's balance.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: balance does not match cumulative series")
)

// ReportUseCase computes read-only views over a session's ledger.
type ReportUseCase struct {
	store          LedgerStore
	defaultBudgets map[string]decimal.Decimal
}

// NewReportUseCase creates a new ReportUseCase. defaultBudgets may be nil
// when no budget file is configured.
func NewReportUseCase(store LedgerStore, defaultBudgets map[string]decimal.Decimal) *ReportUseCase {
	return &ReportUseCase{
		store:          store,
		defaultBudgets: defaultBudgets,
	}
}

// SummaryOutput is the overview of one session's ledger.
type SummaryOutput struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	Balance          decimal.Decimal
	Health           domain.BalanceHealth
	TransactionCount int
}

// Summary returns totals, balance and its health classification.
func (uc *ReportUseCase) Summary(ctx context.Context, sessionID string) (SummaryOutput, error) {
	var out SummaryOutput
	err := uc.store.View(ctx, sessionID, func(ledger *domain.Ledger) error {
		out = SummaryOutput{
			TotalIncome:      ledger.TotalIncome(),
			TotalExpenses:    ledger.TotalExpenses(),
			Balance:          ledger.Balance(),
			TransactionCount: ledger.Len(),
		}
		out.Health = domain.AssessBalance(out.Balance)
		return nil
	})
	if err != nil {
		return SummaryOutput{}, err
	}
	return out, nil
}

// ExpensesByCategory returns summed expense amounts per category.
func (uc *ReportUseCase) ExpensesByCategory(ctx context.Context, sessionID string) (map[string]decimal.Decimal, error) {
	var out map[string]decimal.Decimal
	err := uc.store.View(ctx, sessionID, func(ledger *domain.Ledger) error {
		out = ledger.ExpensesByCategory()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BalanceHistory returns the cumulative balance series.
func (uc *ReportUseCase) BalanceHistory(ctx context.Context, sessionID string) ([]domain.BalancePoint, error) {
	var out []domain.BalancePoint
	err := uc.store.View(ctx, sessionID, func(ledger *domain.Ledger) error {
		out = ledger.CumulativeBalanceSeries()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExpenseStatistics returns per-category spending statistics.
func (uc *ReportUseCase) ExpenseStatistics(ctx context.Context, sessionID string) (domain.ExpenseStats, error) {
	var out domain.ExpenseStats
	err := uc.store.View(ctx, sessionID, func(ledger *domain.Ledger) error {
		out = domain.NewExpenseStats(ledger.Transactions())
		return nil
	})
	if err != nil {
		return domain.ExpenseStats{}, err
	}
	return out, nil
}

// BudgetReport compares spending against budgets. When the caller supplies
// no budgets the configured defaults are used.
func (uc *ReportUseCase) BudgetReport(ctx context.Context, sessionID string, budgets map[string]decimal.Decimal) ([]domain.BudgetComparison, error) {
	if len(budgets) == 0 {
		budgets = uc.defaultBudgets
	}

	var out []domain.BudgetComparison
	err := uc.store.View(ctx, sessionID, func(ledger *domain.Ledger) error {
		out = domain.CompareBudgets(ledger.ExpensesByCategory(), budgets)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CheckConsistency verifies that the ledger's balance equals the final
// point of the cumulative series. An empty ledger is consistent.
func (uc *ReportUseCase) CheckConsistency(ctx context.Context, sessionID string) (bool, error) {
	var consistent bool
	err := uc.store.View(ctx, sessionID, func(ledger *domain.Ledger) error {
		series := ledger.CumulativeBalanceSeries()
		if len(series) == 0 {
			consistent = ledger.Balance().IsZero()
			return nil
		}
		consistent = series[len(series)-1].Balance.Equal(ledger.Balance())
		return nil
	})
	if err != nil {
		return false, err
	}

	if !consistent {
		return false, ErrInconsistentLedger
	}
	return true, nil
}
