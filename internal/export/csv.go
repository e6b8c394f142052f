// Package export renders ledger transactions to the flat-file format
// served by the presentation layer, and parses that format back.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/saku/internal/domain"
)

// DateLayout is the calendar-date serialization used in exports.
const DateLayout = "2006-01-02"

var header = []string{"date", "description", "amount", "category", "type"}

// WriteCSV emits one header row and one row per transaction in ledger
// order. Quoting follows encoding/csv, which escapes commas and quotes
// inside descriptions.
func WriteCSV(w io.Writer, txs []domain.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, tx := range txs {
		record := []string{
			tx.Date.Format(DateLayout),
			tx.Description,
			tx.Amount.String(),
			tx.Category,
			string(tx.Type),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a previously exported file back into transactions,
// preserving row order.
func ReadCSV(r io.Reader) ([]domain.Transaction, error) {
	cr := csv.NewReader(r)

	first, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	if !isHeader(first) {
		return nil, fmt.Errorf("unexpected csv header %v", first)
	}

	var txs []domain.Transaction
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}

		tx, err := parseRecord(record)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func isHeader(record []string) bool {
	if len(record) != len(header) {
		return false
	}
	for i, field := range header {
		if record[i] != field {
			return false
		}
	}
	return true
}

func parseRecord(record []string) (domain.Transaction, error) {
	day, err := time.Parse(DateLayout, record[0])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parsing csv date %q: %w", record[0], err)
	}

	amount, err := decimal.NewFromString(record[2])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parsing csv amount %q: %w", record[2], err)
	}

	txType, err := domain.ParseTransactionType(record[4])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parsing csv type %q: %w", record[4], err)
	}

	return domain.NewTransaction(day, record[1], amount, record[3], txType)
}
