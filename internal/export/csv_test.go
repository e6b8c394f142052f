package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/saku/internal/domain"
)

func testTransactions(t *testing.T) []domain.Transaction {
	t.Helper()

	build := func(day, description, amount, category string, txType domain.TransactionType) domain.Transaction {
		d, err := time.Parse(DateLayout, day)
		require.NoError(t, err)
		tx, err := domain.NewTransaction(d, description, decimal.RequireFromString(amount), category, txType)
		require.NoError(t, err)
		return tx
	}

	return []domain.Transaction{
		build("2024-01-01", "salary", "5000", "Salary", domain.TypeIncome),
		build("2024-01-03", `dinner, with "friends"`, "200.50", "Food", domain.TypeExpense),
		build("2024-01-02", "", "50", "Transport", domain.TypeExpense),
	}
}

func TestWriteCSV_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testTransactions(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "date,description,amount,category,type", lines[0])
	require.Equal(t, "2024-01-01,salary,5000,Salary,income", lines[1])
	require.Contains(t, lines[2], `"dinner, with ""friends"""`)
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	require.Equal(t, "date,description,amount,category,type\n", buf.String())
}

func TestReadCSV_RoundTrip(t *testing.T) {
	original := testTransactions(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, original))

	parsed, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, len(original))

	for i, tx := range parsed {
		require.Equal(t, original[i].Date.Format(DateLayout), tx.Date.Format(DateLayout))
		require.Equal(t, original[i].Description, tx.Description)
		require.True(t, tx.Amount.Equal(original[i].Amount), "amount %s != %s", tx.Amount, original[i].Amount)
		require.Equal(t, original[i].Category, tx.Category)
		require.Equal(t, original[i].Type, tx.Type)
	}
}

func TestReadCSV_EmptyInput(t *testing.T) {
	txs, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, txs)
}

func TestReadCSV_RejectsUnknownHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("when,what,how_much\n"))
	require.Error(t, err)
}

func TestReadCSV_RejectsBadRows(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "bad date",
			input: "date,description,amount,category,type\nJan 1,desc,10,Food,expense\n",
		},
		{
			name:  "bad amount",
			input: "date,description,amount,category,type\n2024-01-01,desc,ten,Food,expense\n",
		},
		{
			name:  "bad type",
			input: "date,description,amount,category,type\n2024-01-01,desc,10,Food,loan\n",
		},
		{
			name:  "negative amount",
			input: "date,description,amount,category,type\n2024-01-01,desc,-10,Food,expense\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			require.Error(t, err)
		})
	}
}
