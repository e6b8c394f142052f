package handler

import (
	"context"
	"net/http"
)

// ExportService defines the behavior needed by ExportHandler.
type ExportService interface {
	ExportCSV(ctx context.Context, sessionID string) ([]byte, error)
}

// ExportHandler handles ledger export HTTP requests.
type ExportHandler struct {
	exportUC ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportUC ExportService) *ExportHandler {
	return &ExportHandler{exportUC: exportUC}
}

// CSV streams the session's transactions as a CSV attachment.
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDParam(r)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	data, err := h.exportUC.ExportCSV(r.Context(), sessionID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to export transactions", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
