package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	baseURL    string
	sessionID  string
	timeout    time.Duration
	jsonOutput bool
)

var defaultCategories = []string{"Food", "Transport", "Entertainment", "Bills", "Salary", "Other"}

func main() {
	rootCmd := &cobra.Command{
		Use:   "saku",
		Short: "Saku CLI tool",
		Long:  `A command line interface for the saku personal finance API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "server", envOr("SAKU_SERVER", "http://localhost:8080"), "Base URL of the saku API")
	rootCmd.PersistentFlags().StringVar(&sessionID, "session", os.Getenv("SAKU_SESSION"), "Session ID (defaults to $SAKU_SESSION)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw API responses as JSON")

	rootCmd.AddCommand(
		sessionCmd(),
		addCmd(),
		listCmd(),
		deleteCmd(),
		summaryCmd(),
		categoriesCmd(),
		historyCmd(),
		statsCmd(),
		budgetCmd(),
		checkCmd(),
		exportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Session commands

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session operations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "new",
			Short: "Create a new session",
			Run: func(cmd *cobra.Command, args []string) {
				createSession()
			},
		},
		&cobra.Command{
			Use:   "drop",
			Short: "Drop the current session and its ledger",
			Run: func(cmd *cobra.Command, args []string) {
				dropSession()
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Clear every transaction in the current session",
			Run: func(cmd *cobra.Command, args []string) {
				resetSession()
			},
		},
	)

	return cmd
}

func createSession() {
	data, status := doRequest(http.MethodPost, "/api/v1/sessions", nil)
	if status != http.StatusCreated {
		fatalAPIError(status, data)
	}

	var session sessionView
	mustUnmarshal(data, &session)

	fmt.Printf("Session created: %s\n", session.ID)
	fmt.Printf("Reuse it with: export SAKU_SESSION=%s\n", session.ID)
}

func dropSession() {
	requireSession()

	data, status := doRequest(http.MethodDelete, sessionPath(""), nil)
	if status != http.StatusNoContent {
		fatalAPIError(status, data)
	}

	fmt.Printf("Session %s dropped\n", sessionID)
}

func resetSession() {
	requireSession()

	data, status := doRequest(http.MethodPost, sessionPath("/reset"), nil)
	if status != http.StatusOK {
		fatalAPIError(status, data)
	}

	fmt.Println("Ledger cleared")
}

// Transaction commands

func addCmd() *cobra.Command {
	var (
		date        string
		description string
		amount      string
		category    string
		txType      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction",
		Long: "Add a transaction to the session ledger.\n\n" +
			"Common categories: " + strings.Join(defaultCategories, ", ") + ".",
		Run: func(cmd *cobra.Command, args []string) {
			addTransaction(date, description, amount, category, txType)
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().Format("2006-01-02"), "Transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Free-form description")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount, must be positive")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category name")
	cmd.Flags().StringVarP(&txType, "type", "t", "expense", "income or expense")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func addTransaction(date, description, amount, category, txType string) {
	requireSession()

	body, _ := json.Marshal(map[string]string{
		"date":        date,
		"description": description,
		"amount":      amount,
		"category":    category,
		"type":        txType,
	})

	data, status := doRequest(http.MethodPost, sessionPath("/transactions"), bytes.NewReader(body))
	if status != http.StatusCreated {
		fatalAPIError(status, data)
	}

	var tx transactionView
	mustUnmarshal(data, &tx)

	fmt.Printf("Added transaction %d: %s %s (%s, %s)\n",
		tx.Index, tx.Date, rupiah(tx.Amount), tx.Category, tx.Type)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List transactions with their current indices",
		Run: func(cmd *cobra.Command, args []string) {
			listTransactions()
		},
	}
}

func listTransactions() {
	requireSession()

	data, status := doRequest(http.MethodGet, sessionPath("/transactions"), nil)
	if status != http.StatusOK {
		fatalAPIError(status, data)
	}

	if jsonOutput {
		printJSONBytes(data)
		return
	}

	var txs []transactionView
	mustUnmarshal(data, &txs)

	if len(txs) == 0 {
		fmt.Println("No transactions yet.")
		return
	}

	fmt.Printf("%-5s %-12s %-24s %-14s %-8s %s\n", "IDX", "DATE", "DESCRIPTION", "CATEGORY", "TYPE", "AMOUNT")
	for _, tx := range txs {
		fmt.Printf("%-5d %-12s %-24s %-14s %-8s %s\n",
			tx.Index, tx.Date, truncate(tx.Description, 24), truncate(tx.Category, 14), tx.Type, rupiah(tx.Amount))
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete a transaction by its current index",
		Long: "Delete a transaction by its current index.\n\n" +
			"Indices shift down after a delete; run 'saku list' for current ones.",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			deleteTransaction(args[0])
		},
	}
}

func deleteTransaction(index string) {
	requireSession()

	if _, err := strconv.Atoi(index); err != nil {
		fatalf("Invalid index %q, expected a number", index)
	}

	data, status := doRequest(http.MethodDelete, sessionPath("/transactions/"+index), nil)
	if status != http.StatusOK {
		fatalAPIError(status, data)
	}

	var tx transactionView
	mustUnmarshal(data, &tx)

	fmt.Printf("Deleted %s %s (%s)\n", tx.Date, rupiah(tx.Amount), tx.Description)
}

// Report commands

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals, balance, and balance health",
		Run: func(cmd *cobra.Command, args []string) {
			showSummary()
		},
	}
}

func showSummary() {
	requireSession()

	data, status := doRequest(http.MethodGet, sessionPath("/summary"), nil)
	if status != http.StatusOK {
		fatalAPIError(status, data)
	}

	if jsonOutput {
		printJSONBytes(data)
		return
	}

	var summary summaryView
	mustUnmarshal(data, &summary)

	fmt.Printf("Total Income:    %s\n", rupiah(summary.TotalIncome))
	fmt.Printf("Total Expenses:  %s\n", rupiah(summary.TotalExpenses))
	fmt.Printf("Balance:         %s\n", rupiah(summary.Balance))
	fmt.Printf("Health:          %s\n", summary.Health)
	fmt.Printf("Transactions:    %d\n", summary.TransactionCount)
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show expenses grouped by category",
		Run: func(cmd *cobra.Command, args []string) {
			showCategories()
		},
	}
}

func showCategories() {
	requireSession()

	data, status := doRequest(http.MethodGet, sessionPath("/reports/expenses-by-category"), nil)
	if status != http.StatusOK {
		fatalAPIError(status, data)
	}

	if jsonOutput {
		printJSONBytes(data)
		return
	}

	var resp struct {
		Expenses map[string]string `json:"expenses"`
	}
	mustUnmarshal(data, &resp)

	if len(resp.Expenses) == 0 {
		fmt.Println("No expenses yet.")
		return
	}

	names := make([]string, 0, len(resp.Expenses))
	for name := range resp.Expenses {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%-20s %s\n", "CATEGORY", "SPENT")
	for _, name := range names {
		fmt.Printf("%-20s %s\n", truncate(name, 20), rupiah(resp.Expenses[name]))
	}
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the cumulative balance over time",
		Run: func(cmd *cobra.Command, args []string) {
			showHistory()
		},
	}
}

func showHistory() {
	requireSession()

	data, status := doRequest(http.MethodGet, sessionPath("/reports/balance-history"), nil)
	if status != http.StatusOK {
		fatalAPIError(status, data)
	}

	if jsonOutput {
		printJSONBytes(data)
		return
	}

	var points []struct {
		Date    string `json:"date"`
		Balance string `json:"balance"`
	}
	mustUnmarshal(data, &points)

	if len(points) == 0 {
		fmt.Println("No transactions yet.")
		return
	}

	fmt.Printf("%-12s %s\n", "DATE", "BALANCE")
	for _, point := range points {
		fmt.Printf("%-12s %s\n", point.Date, rupiah(point.Balance))
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show expense statistics by category",
		Run: func(cmd *cobra.Command, args []string) {
			showStats()
		},
	}
}

func showStats() {
	requireSession()

	data, status := doRequest(http.MethodGet, sessionPath("/reports/statistics"), nil)
	if status != http.StatusOK {
		fatalAPIError(status, data)
	}

	if jsonOutput {
		printJSONBytes(data)
		return
	}

	var stats struct {
		Total       string `json:"total"`
		TopCategory string `json:"top_category"`
		Categories  []struct {
			Category string `json:"category"`
			Total    string `json:"total"`
			Average  string `json:"average"`
			Share    string `json:"share"`
		} `json:"categories"`
	}
	mustUnmarshal(data, &stats)

	fmt.Printf("Total Expenses: %s\n", rupiah(stats.Total))
	if stats.TopCategory != "" {
		fmt.Printf("Top Category:   %s\n", stats.TopCategory)
	}

	if len(stats.Categories) == 0 {
		fmt.Println("No expenses yet.")
		return
	}

	fmt.Printf("%-20s %-16s %-16s %s\n", "CATEGORY", "TOTAL", "AVERAGE", "SHARE")
	for _, c := range stats.Categories {
		fmt.Printf("%-20s %-16s %-16s %s%%\n",
			truncate(c.Category, 20), rupiah(c.Total), rupiah(c.Average), c.Share)
	}
}

func budgetCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Compare spending against budgets",
		Long: "Compare spending against budgets.\n\n" +
			"Without --set the server's default budgets apply.",
		Run: func(cmd *cobra.Command, args []string) {
			showBudgetReport(sets)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Budget override as Category=Amount (repeatable)")

	return cmd
}

func showBudgetReport(sets []string) {
	requireSession()

	budgets, err := parseBudgetArgs(sets)
	if err != nil {
		fatalf("%v", err)
	}

	body, _ := json.Marshal(map[string]any{"budgets": budgets})

	data, status := doRequest(http.MethodPost, sessionPath("/reports/budget"), bytes.NewReader(body))
	if status != http.StatusOK {
		fatalAPIError(status, data)
	}

	if jsonOutput {
		printJSONBytes(data)
		return
	}

	var rows []struct {
		Category string `json:"category"`
		Budget   string `json:"budget"`
		Actual   string `json:"actual"`
		Status   string `json:"status"`
	}
	mustUnmarshal(data, &rows)

	if len(rows) == 0 {
		fmt.Println("No budgets configured. Pass --set Category=Amount or configure BUDGETS_FILE on the server.")
		return
	}

	fmt.Printf("%-20s %-16s %-16s %s\n", "CATEGORY", "BUDGET", "ACTUAL", "STATUS")
	for _, row := range rows {
		marker := "within budget"
		if row.Status == "over_budget" {
			marker = "OVER BUDGET"
		}
		fmt.Printf("%-20s %-16s %-16s %s\n",
			truncate(row.Category, 20), rupiah(row.Budget), rupiah(row.Actual), marker)
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}
}

func checkConsistency() {
	requireSession()

	data, status := doRequest(http.MethodGet, sessionPath("/consistency"), nil)

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		fatalf("Failed to parse response: %v", err)
	}

	if status != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\n", status)
		if message, ok := result["message"].(string); ok {
			fmt.Printf("Message: %s\n", message)
		}
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	if consistent, ok := result["consistent"].(bool); ok {
		fmt.Printf("Consistent: %v\n", consistent)
	}
	fmt.Printf("Status: %s\n", result["status"])
}

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger as CSV",
		Run: func(cmd *cobra.Command, args []string) {
			exportCSV(output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

func exportCSV(output string) {
	requireSession()

	data, status := doRequest(http.MethodGet, sessionPath("/export/csv"), nil)
	if status != http.StatusOK {
		fatalAPIError(status, data)
	}

	if output == "" {
		fmt.Print(string(data))
		return
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		fatalf("Failed to write %s: %v", output, err)
	}

	fmt.Printf("Exported %d bytes to %s\n", len(data), output)
}

// Response views

type sessionView struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

type transactionView struct {
	Index       int    `json:"index"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Type        string `json:"type"`
}

type summaryView struct {
	TotalIncome      string `json:"total_income"`
	TotalExpenses    string `json:"total_expenses"`
	Balance          string `json:"balance"`
	Health           string `json:"health"`
	TransactionCount int    `json:"transaction_count"`
}

// HTTP helpers

func doRequest(method, path string, body io.Reader) ([]byte, int) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fatalf("Error building request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		fatalf("Error making request: %v", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	return data, resp.StatusCode
}

func sessionPath(suffix string) string {
	return "/api/v1/sessions/" + sessionID + suffix
}

func requireSession() {
	if sessionID == "" {
		fatalf("No session set. Run 'saku session new', then pass --session or set $SAKU_SESSION.")
	}
}

func mustUnmarshal(data []byte, v any) {
	if err := json.Unmarshal(data, v); err != nil {
		fatalf("Failed to parse response: %v", err)
	}
}

func fatalAPIError(status int, body []byte) {
	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		fatalf("Request failed (%d): %s", status, apiErr.Error)
	}

	fatalf("Request failed (%d): %s", status, string(body))
}

func fatalf(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}

// Rendering helpers

// formatRupiah renders an amount as Indonesian Rupiah: truncated to whole
// units, dots as thousands separators, "Rp. " prefix. Rp. -5.000 for
// negatives.
func formatRupiah(amount decimal.Decimal) string {
	whole := amount.Truncate(0).String()

	negative := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	if negative {
		return "Rp. -" + b.String()
	}

	return "Rp. " + b.String()
}

// rupiah formats a decimal string from the API, leaving it untouched when
// it does not parse.
func rupiah(amount string) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}

	return formatRupiah(d)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}

	return s[:max-3] + "..."
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("Failed to render JSON: %v", err)
	}

	fmt.Println(string(data))
}

func printJSONBytes(data []byte) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		fmt.Println(string(data))
		return
	}

	printJSON(v)
}

func parseBudgetArgs(pairs []string) (map[string]string, error) {
	budgets := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		category, amount, ok := strings.Cut(pair, "=")
		if !ok || category == "" || amount == "" {
			return nil, fmt.Errorf("invalid budget %q, expected Category=Amount", pair)
		}
		budgets[category] = amount
	}

	return budgets, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
