package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/saku/internal/adapter/http/handler"
	"github.com/iho/saku/internal/adapter/http/middleware"
	"github.com/iho/saku/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	SessionHandler     *handler.SessionHandler
	TransactionHandler *handler.TransactionHandler
	ReportHandler      *handler.ReportHandler
	ExportHandler      *handler.ExportHandler
	HealthHandler      *handler.HealthHandler
	Logger             zerolog.Logger
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Sessions
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", cfg.SessionHandler.Create)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Delete("/", cfg.SessionHandler.Drop)
				r.Post("/reset", cfg.SessionHandler.Reset)

				r.Route("/transactions", func(r chi.Router) {
					r.Post("/", cfg.TransactionHandler.Create)
					r.Get("/", cfg.TransactionHandler.List)
					r.Delete("/{index}", cfg.TransactionHandler.Delete)
				})

				r.Get("/summary", cfg.ReportHandler.Summary)
				r.Get("/consistency", cfg.ReportHandler.CheckConsistency)

				r.Route("/reports", func(r chi.Router) {
					r.Get("/expenses-by-category", cfg.ReportHandler.ExpensesByCategory)
					r.Get("/balance-history", cfg.ReportHandler.BalanceHistory)
					r.Get("/statistics", cfg.ReportHandler.ExpenseStatistics)
					r.Post("/budget", cfg.ReportHandler.BudgetReport)
				})

				r.Get("/export/csv", cfg.ExportHandler.CSV)
			})
		})
	})

	return r
}
