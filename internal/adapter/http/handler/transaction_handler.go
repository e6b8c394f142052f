package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/saku/internal/adapter/http/dto"
	"github.com/iho/saku/internal/domain"
	"github.com/iho/saku/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	AddTransaction(ctx context.Context, sessionID string, input usecase.AddTransactionInput) (domain.Transaction, int, error)
	DeleteTransaction(ctx context.Context, sessionID string, index int) (domain.Transaction, error)
	ListTransactions(ctx context.Context, sessionID string) ([]domain.Transaction, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Create records a new transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDParam(r)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction", err.Error())
		return
	}

	tx, index, err := h.transactionUC.AddTransaction(r.Context(), sessionID, input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to add transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(index, tx))
}

// List returns the session's transactions in insertion order.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDParam(r)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	txs, err := h.transactionUC.ListTransactions(r.Context(), sessionID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txs))
}

// Delete removes the transaction at the given position.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDParam(r)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	index, err := parseIndexParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid index", err.Error())
		return
	}

	removed, err := h.transactionUC.DeleteTransaction(r.Context(), sessionID, index)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(index, removed))
}
