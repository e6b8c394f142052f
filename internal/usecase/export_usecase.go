package usecase

import (
	"bytes"
	"context"

	"github.com/iho/saku/internal/domain"
	"github.com/iho/saku/internal/export"
)

// ExportUseCase renders a session's ledger as a flat file.
type ExportUseCase struct {
	store LedgerStore
}

// NewExportUseCase creates a new ExportUseCase.
func NewExportUseCase(store LedgerStore) *ExportUseCase {
	return &ExportUseCase{store: store}
}

// ExportCSV returns the session's transactions as CSV, one header row and
// one row per transaction in ledger order.
func (uc *ExportUseCase) ExportCSV(ctx context.Context, sessionID string) ([]byte, error) {
	var buf bytes.Buffer
	err := uc.store.View(ctx, sessionID, func(ledger *domain.Ledger) error {
		return export.WriteCSV(&buf, ledger.Transactions())
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
