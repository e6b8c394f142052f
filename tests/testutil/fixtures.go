package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	adaptershttp "github.com/iho/saku/internal/adapter/http"
	"github.com/iho/saku/internal/adapter/http/dto"
	"github.com/iho/saku/internal/adapter/http/handler"
	"github.com/iho/saku/internal/adapter/http/middleware"
	"github.com/iho/saku/internal/adapter/repository/memory"
	"github.com/iho/saku/internal/infrastructure/eventpublisher"
	"github.com/iho/saku/internal/usecase"
)

// TestApp wires the full HTTP stack against the in-memory store. Requests
// go through the real router, so middleware and handlers are exercised the
// same way the server binary exercises them.
type TestApp struct {
	Router http.Handler
	Store  *memory.Store
	t      *testing.T
}

// Option tweaks the router wiring before it is built.
type Option func(*adaptershttp.RouterConfig)

// WithIdempotencyStore enables idempotency replay on the test app.
func WithIdempotencyStore(store usecase.IdempotencyStore) Option {
	return func(cfg *adaptershttp.RouterConfig) {
		cfg.IdempotencyStore = store
	}
}

// WithRateLimiter enables rate limiting on the test app.
func WithRateLimiter(limiter *middleware.RateLimiter) Option {
	return func(cfg *adaptershttp.RouterConfig) {
		cfg.RateLimiter = limiter
	}
}

// NewTestApp builds a fully wired application for integration tests.
func NewTestApp(t *testing.T, opts ...Option) *TestApp {
	t.Helper()

	store := memory.NewStore()
	idGenerator := memory.NewULIDGenerator()
	publisher := eventpublisher.NewLogPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))

	ledgerUseCase := usecase.NewLedgerUseCase(store, idGenerator, publisher, zerolog.Nop())
	reportUseCase := usecase.NewReportUseCase(store, nil)
	exportUseCase := usecase.NewExportUseCase(store)

	cfg := adaptershttp.RouterConfig{
		SessionHandler:     handler.NewSessionHandler(ledgerUseCase),
		TransactionHandler: handler.NewTransactionHandler(ledgerUseCase),
		ReportHandler:      handler.NewReportHandler(reportUseCase),
		ExportHandler:      handler.NewExportHandler(exportUseCase),
		HealthHandler:      handler.NewHealthHandler(nil),
		Logger:             zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &TestApp{
		Router: adaptershttp.NewRouter(cfg),
		Store:  store,
		t:      t,
	}
}

// Do executes a request against the router. A non-nil body is sent as JSON.
func (app *TestApp) Do(method, path string, body any) *httptest.ResponseRecorder {
	app.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			app.t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	r := httptest.NewRequest(method, path, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()

	app.Router.ServeHTTP(w, r)

	return w
}

// CreateSession creates a session through the API and returns its ID.
func (app *TestApp) CreateSession() string {
	app.t.Helper()

	w := app.Do(http.MethodPost, "/api/v1/sessions", nil)
	if w.Code != http.StatusCreated {
		app.t.Fatalf("failed to create session: %d %s", w.Code, w.Body.String())
	}

	var resp dto.SessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		app.t.Fatalf("failed to parse session response: %v", err)
	}

	return resp.ID
}

// AddTransaction records a transaction through the API.
func (app *TestApp) AddTransaction(sessionID string, req dto.CreateTransactionRequest) dto.TransactionResponse {
	app.t.Helper()

	w := app.Do(http.MethodPost, "/api/v1/sessions/"+sessionID+"/transactions", req)
	if w.Code != http.StatusCreated {
		app.t.Fatalf("failed to add transaction: %d %s", w.Code, w.Body.String())
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		app.t.Fatalf("failed to parse transaction response: %v", err)
	}

	return resp
}

// Decode parses the recorder's JSON body into v.
func Decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
}

// GenerateID generates a new ULID.
func GenerateID() string {
	return ulid.Make().String()
}
