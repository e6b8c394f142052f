package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/saku/internal/adapter/http/dto"
	"github.com/iho/saku/internal/domain"
	"github.com/iho/saku/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Summary(ctx context.Context, sessionID string) (usecase.SummaryOutput, error)
	ExpensesByCategory(ctx context.Context, sessionID string) (map[string]decimal.Decimal, error)
	BalanceHistory(ctx context.Context, sessionID string) ([]domain.BalancePoint, error)
	ExpenseStatistics(ctx context.Context, sessionID string) (domain.ExpenseStats, error)
	BudgetReport(ctx context.Context, sessionID string, budgets map[string]decimal.Decimal) ([]domain.BudgetComparison, error)
	CheckConsistency(ctx context.Context, sessionID string) (bool, error)
}

// ReportHandler handles reporting HTTP requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Summary returns totals, balance and health for a session.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDParam(r)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	out, err := h.reportUC.Summary(r.Context(), sessionID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromUseCase(out))
}

// ExpensesByCategory returns summed expenses per category.
func (h *ReportHandler) ExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDParam(r)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	totals, err := h.reportUC.ExpensesByCategory(r.Context(), sessionID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to group expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpensesByCategoryFromDomain(totals))
}

// BalanceHistory returns the cumulative balance series.
func (h *ReportHandler) BalanceHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDParam(r)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	points, err := h.reportUC.BalanceHistory(r.Context(), sessionID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build balance history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancePointsFromDomain(points))
}

// ExpenseStatistics returns per-category spending statistics.
func (h *ReportHandler) ExpenseStatistics(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDParam(r)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	stats, err := h.reportUC.ExpenseStatistics(r.Context(), sessionID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute statistics", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseStatsFromDomain(stats))
}

// BudgetReport compares spending against budgets.
func (h *ReportHandler) BudgetReport(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDParam(r)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	var req dto.BudgetReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	budgets, err := req.ToBudgets()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid budget", err.Error())
		return
	}

	comparisons, err := h.reportUC.BudgetReport(r.Context(), sessionID, budgets)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build budget report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetComparisonsFromDomain(comparisons))
}

// CheckConsistency checks whether the session's ledger is consistent.
func (h *ReportHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDParam(r)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	consistent, err := h.reportUC.CheckConsistency(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, usecase.ErrInconsistentLedger) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"status":     "inconsistent",
				"consistent": false,
				"message":    err.Error(),
			})
			return
		}
		status := mapDomainError(err)
		writeError(w, status, "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "consistent",
		"consistent": consistent,
	})
}
