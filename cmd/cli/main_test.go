package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"longerstring", 6, "lon..."},
		{"exact", 5, "exact"},
		{"ab", 2, "ab"},
		{"abcd", 3, "abc"},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"millions", decimal.NewFromInt(5000000), "Rp. 5.000.000"},
		{"thousands", decimal.NewFromInt(50000), "Rp. 50.000"},
		{"hundreds stay ungrouped", decimal.NewFromInt(999), "Rp. 999"},
		{"fraction truncated", decimal.RequireFromString("125.5"), "Rp. 125"},
		{"zero", decimal.Zero, "Rp. 0"},
		{"negative", decimal.NewFromInt(-5000), "Rp. -5.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRupiah(tt.amount); got != tt.want {
				t.Errorf("formatRupiah(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestRupiah(t *testing.T) {
	if got := rupiah("1234567"); got != "Rp. 1.234.567" {
		t.Errorf("rupiah(1234567) = %q, want Rp. 1.234.567", got)
	}

	// Unparseable amounts pass through so the table still renders.
	if got := rupiah("n/a"); got != "n/a" {
		t.Errorf("rupiah(n/a) = %q, want n/a", got)
	}
}

func TestPrintJSON(t *testing.T) {
	output := captureOutput(t, func() {
		printJSON(map[string]int{"a": 1})
	})

	want := "{\n  \"a\": 1\n}\n"
	if output != want {
		t.Errorf("printJSON output = %q, want %q", output, want)
	}
}

func TestParseBudgetArgs(t *testing.T) {
	budgets, err := parseBudgetArgs([]string{"Food=500", "Transport=150.75"})
	if err != nil {
		t.Fatalf("parseBudgetArgs returned error: %v", err)
	}
	if budgets["Food"] != "500" {
		t.Errorf("budgets[Food] = %q, want 500", budgets["Food"])
	}
	if budgets["Transport"] != "150.75" {
		t.Errorf("budgets[Transport] = %q, want 150.75", budgets["Transport"])
	}

	for _, bad := range []string{"Food", "=500", "Food="} {
		if _, err := parseBudgetArgs([]string{bad}); err == nil {
			t.Errorf("parseBudgetArgs(%q) expected error", bad)
		}
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("SAKU_TEST_ENV", "from-env")

	if got := envOr("SAKU_TEST_ENV", "fallback"); got != "from-env" {
		t.Errorf("envOr = %q, want from-env", got)
	}
	if got := envOr("SAKU_TEST_ENV_UNSET", "fallback"); got != "fallback" {
		t.Errorf("envOr = %q, want fallback", got)
	}
}

func TestCreateSessionPrintsID(t *testing.T) {
	output := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/sessions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"01JTESTSESSION","created_at":"2024-03-01T10:00:00Z"}`))
	}, createSession)

	if !strings.Contains(output, "Session created: 01JTESTSESSION") {
		t.Errorf("output missing session ID: %q", output)
	}
	if !strings.Contains(output, "export SAKU_SESSION=01JTESTSESSION") {
		t.Errorf("output missing export hint: %q", output)
	}
}

func TestListTransactionsRendersTable(t *testing.T) {
	payload := `[
		{"index":0,"date":"2024-03-01","description":"monthly salary","amount":"5000000","category":"Salary","type":"income"},
		{"index":1,"date":"2024-03-02","description":"groceries","amount":"125.5","category":"Food","type":"expense"}
	]`

	output := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/sessions/01JSESSION/transactions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}, listTransactions)

	if !strings.Contains(output, "IDX") {
		t.Errorf("output missing header: %q", output)
	}
	if !strings.Contains(output, "monthly salary") {
		t.Errorf("output missing description: %q", output)
	}
	if !strings.Contains(output, "Rp. 5.000.000") {
		t.Errorf("output missing formatted amount: %q", output)
	}
	if !strings.Contains(output, "Rp. 125") {
		t.Errorf("output missing truncated amount: %q", output)
	}
}

func TestShowSummaryOutput(t *testing.T) {
	payload := `{"total_income":"5000000","total_expenses":"350.25","balance":"4999649.75","health":"healthy","transaction_count":4}`

	output := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}, showSummary)

	if !strings.Contains(output, "Total Income:    Rp. 5.000.000") {
		t.Errorf("output missing income: %q", output)
	}
	if !strings.Contains(output, "Total Expenses:  Rp. 350") {
		t.Errorf("output missing expenses: %q", output)
	}
	if !strings.Contains(output, "Balance:         Rp. 4.999.649") {
		t.Errorf("output missing balance: %q", output)
	}
	if !strings.Contains(output, "Health:          healthy") {
		t.Errorf("output missing health: %q", output)
	}
	if !strings.Contains(output, "Transactions:    4") {
		t.Errorf("output missing count: %q", output)
	}
}

func TestShowSummaryJSONOutput(t *testing.T) {
	payload := `{"total_income":"100","total_expenses":"0","balance":"100","health":"stable","transaction_count":1}`

	jsonOutput = true
	defer func() { jsonOutput = false }()

	output := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}, showSummary)

	if !strings.Contains(output, "\"total_income\": \"100\"") {
		t.Errorf("expected pretty JSON, got %q", output)
	}
	if strings.Contains(output, "Total Income:") {
		t.Errorf("expected raw JSON only, got %q", output)
	}
}

func TestCheckConsistencyPassed(t *testing.T) {
	payload := `{"status":"consistent","consistent":true,"stored_balance":"100","computed_balance":"100"}`

	output := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/sessions/01JSESSION/consistency" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}, checkConsistency)

	if !strings.Contains(output, "Consistency check PASSED") {
		t.Errorf("output missing PASSED: %q", output)
	}
	if !strings.Contains(output, "Consistent: true") {
		t.Errorf("output missing consistent flag: %q", output)
	}
	if !strings.Contains(output, "Status: consistent") {
		t.Errorf("output missing status: %q", output)
	}
}

func TestShowBudgetReportMarksOverspend(t *testing.T) {
	payload := `[
		{"category":"Food","budget":"500","actual":"620.5","status":"over_budget"},
		{"category":"Transport","budget":"150","actual":"80","status":"under_budget"}
	]`

	output := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"Food":"500"`) {
			t.Errorf("request body missing budget override: %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}, func() {
		showBudgetReport([]string{"Food=500"})
	})

	if !strings.Contains(output, "OVER BUDGET") {
		t.Errorf("output missing overspend marker: %q", output)
	}
	if !strings.Contains(output, "within budget") {
		t.Errorf("output missing within-budget marker: %q", output)
	}
}

func TestExportCSVWritesFile(t *testing.T) {
	csvBody := "date,description,amount,category,type\n2024-03-01,salary,5000000,Salary,income\n"
	target := filepath.Join(t.TempDir(), "ledger.csv")

	output := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/sessions/01JSESSION/export/csv" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(csvBody))
	}, func() {
		exportCSV(target)
	})

	if !strings.Contains(output, "Exported") {
		t.Errorf("output missing confirmation: %q", output)
	}

	written, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read exported file: %v", err)
	}
	if string(written) != csvBody {
		t.Errorf("exported file = %q, want %q", written, csvBody)
	}
}

// withServer points the CLI at a test server and captures what the command
// prints. The session ID is fixed to 01JSESSION.
func withServer(t *testing.T, handler http.HandlerFunc, fn func()) string {
	t.Helper()

	srv := httptest.NewServer(handler)
	defer srv.Close()

	origURL, origSession, origTimeout := baseURL, sessionID, timeout
	baseURL, sessionID, timeout = srv.URL, "01JSESSION", 5*time.Second
	defer func() {
		baseURL, sessionID, timeout = origURL, origSession, origTimeout
	}()

	return captureOutput(t, fn)
}

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}

	return buf.String()
}
