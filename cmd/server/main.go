package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/iho/saku/internal/adapter/http"
	"github.com/iho/saku/internal/adapter/http/handler"
	"github.com/iho/saku/internal/adapter/http/middleware"
	"github.com/iho/saku/internal/adapter/repository/memory"
	redisrepo "github.com/iho/saku/internal/adapter/repository/redis"
	"github.com/iho/saku/internal/infrastructure/budget"
	"github.com/iho/saku/internal/infrastructure/config"
	"github.com/iho/saku/internal/infrastructure/eventpublisher"
	"github.com/iho/saku/internal/infrastructure/logger"
	"github.com/iho/saku/internal/infrastructure/metrics"
	redisinfra "github.com/iho/saku/internal/infrastructure/redis"
	"github.com/iho/saku/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "saku-server",
	})
	log.Logger = appLogger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis only backs idempotency replay, so it is optional.
	var (
		redisClient      *redis.Client
		idempotencyStore usecase.IdempotencyStore
	)
	if cfg.RedisURL != "" {
		redisClient, err = redisinfra.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()

		idempotencyStore = redisrepo.NewIdempotencyStore(redisClient)
		appLogger.Info().Msg("connected to redis, idempotency replay enabled")
	}

	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	publisher, closePublisher, err := newEventPublisher(cfg, appMetrics)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to AMQP broker")
	}
	if closePublisher != nil {
		defer func() {
			if err := closePublisher(); err != nil {
				appLogger.Warn().Err(err).Msg("failed to close AMQP publisher")
			}
		}()
		appLogger.Info().Str("exchange", cfg.AMQPExchange).Msg("connected to AMQP broker")
	}

	defaultBudgets, err := budget.LoadFile(cfg.BudgetsFile)
	if err != nil {
		appLogger.Fatal().Err(err).Str("file", cfg.BudgetsFile).Msg("failed to load budgets file")
	}
	if len(defaultBudgets) > 0 {
		appLogger.Info().Int("categories", len(defaultBudgets)).Msg("loaded default budgets")
	}

	store := memory.NewStore()
	idGenerator := memory.NewULIDGenerator()

	ledgerUseCase := usecase.NewLedgerUseCase(store, idGenerator, publisher, appLogger)
	reportUseCase := usecase.NewReportUseCase(store, defaultBudgets)
	exportUseCase := usecase.NewExportUseCase(store)

	rateLimiter := rateLimiterFromConfig(cfg)

	router := httpadapter.NewRouter(httpadapter.RouterConfig{
		SessionHandler:     handler.NewSessionHandler(ledgerUseCase),
		TransactionHandler: handler.NewTransactionHandler(ledgerUseCase),
		ReportHandler:      handler.NewReportHandler(reportUseCase),
		ExportHandler:      handler.NewExportHandler(exportUseCase),
		HealthHandler:      handler.NewHealthHandler(redisClient),
		Logger:             appLogger,
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        rateLimiter,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		appLogger.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if rateLimiter != nil {
		group.Go(func() error {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()

			for {
				select {
				case <-groupCtx.Done():
					return nil
				case <-ticker.C:
					rateLimiter.CleanupLimiters()
				}
			}
		})
	}

	if err := group.Wait(); err != nil {
		appLogger.Fatal().Err(err).Msg("server failed")
	}

	appLogger.Info().Msg("server stopped")
}

// newEventPublisher picks the AMQP publisher when a broker is configured and
// falls back to logging events. The close function is non-nil only for AMQP.
func newEventPublisher(cfg *config.Config, m *metrics.Metrics) (usecase.EventPublisher, func() error, error) {
	var (
		inner   usecase.EventPublisher = eventpublisher.NewLogPublisher(nil)
		closeFn func() error
	)

	if cfg.AMQPURL != "" {
		amqpPublisher, err := eventpublisher.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return nil, nil, err
		}
		inner = amqpPublisher
		closeFn = amqpPublisher.Close
	}

	return eventpublisher.NewInstrumented(inner, m), closeFn, nil
}

func rateLimiterFromConfig(cfg *config.Config) *middleware.RateLimiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}

	return middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
}
