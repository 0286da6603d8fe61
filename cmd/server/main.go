package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/bookkeeper/internal/adapter/http"
	"github.com/iho/bookkeeper/internal/adapter/http/handler"
	"github.com/iho/bookkeeper/internal/adapter/idempotency"
	"github.com/iho/bookkeeper/internal/chart"
	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/infrastructure/config"
	"github.com/iho/bookkeeper/internal/infrastructure/logger"
	redisInfra "github.com/iho/bookkeeper/internal/infrastructure/redis"
	"github.com/iho/bookkeeper/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))

	policy, err := domain.ParseDuplicatePolicy(cfg.DuplicatePolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid duplicate policy")
	}

	ctx := context.Background()

	// Build the ledger
	ledger := domain.NewLedger(
		domain.WithDuplicatePolicy(policy),
		domain.WithLogger(appLogger),
	)

	// Preload the chart of accounts when configured
	var chartRoot *domain.Group
	if cfg.ChartFile != "" {
		chartRoot, err = loadChart(cfg, policy, appLogger)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.ChartFile).Msg("failed to load chart of accounts")
		}
		if err := ledger.RegisterGroup(chartRoot); err != nil {
			log.Fatal().Err(err).Msg("failed to register chart accounts")
		}
		log.Info().Str("file", cfg.ChartFile).Msg("chart of accounts loaded")
	}

	// Idempotency store: Redis when configured, in-process otherwise
	var redisClient *redis.Client
	var idempotencyStore usecase.IdempotencyStore = idempotency.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisClient, err = redisInfra.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		idempotencyStore = idempotency.NewRedisStore(redisClient)
		log.Info().Msg("connected to redis")
	}

	// Initialize services
	ledgerService := usecase.NewLedgerService(ledger, appLogger)
	chartService := usecase.NewChartService(chartRoot, ledger)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(ledgerService)
	entryHandler := handler.NewEntryHandler(ledgerService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	chartHandler := handler.NewChartHandler(chartService)
	healthHandler := handler.NewHealthHandler(redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		EntryHandler:     entryHandler,
		LedgerHandler:    ledgerHandler,
		ChartHandler:     chartHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Logger:           appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func loadChart(cfg *config.Config, policy domain.DuplicatePolicy, appLogger zerolog.Logger) (*domain.Group, error) {
	f, err := os.Open(cfg.ChartFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return chart.Load(f, cfg.ChartCurrency,
		domain.WithDuplicatePolicy(policy),
		domain.WithLogger(appLogger),
	)
}
