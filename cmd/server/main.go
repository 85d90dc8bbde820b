package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gobooks/internal/adapter/http"
	"github.com/iho/gobooks/internal/adapter/http/handler"
	"github.com/iho/gobooks/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/gobooks/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gobooks/internal/adapter/repository/redis"
	"github.com/iho/gobooks/internal/infrastructure/auth"
	"github.com/iho/gobooks/internal/infrastructure/config"
	"github.com/iho/gobooks/internal/infrastructure/logger"
	"github.com/iho/gobooks/internal/infrastructure/metrics"
	"github.com/iho/gobooks/internal/infrastructure/postgres"
	"github.com/iho/gobooks/internal/infrastructure/redis"
	"github.com/iho/gobooks/internal/usecase"
)

const limiterCleanupInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return err
		}
	}

	classifier, err := cfg.Classifier()
	if err != nil {
		return fmt.Errorf("chart of accounts: %w", err)
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer pool.Close()
	logger.Info().Msg("connected to postgres")

	m := metrics.New()

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, m)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer redisClient.Close()
	logger.Info().Msg("connected to redis")

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	journalRepo := postgresRepo.NewJournalRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool)
	reconRepo := postgresRepo.NewReconciliationRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository()
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	reportRepo := postgresRepo.NewReportRepository(pool)
	saleRepo := postgresRepo.NewSaleRepository(pool)
	accountCache := redisRepo.NewAccountCache(redisClient, cfg.AccountCacheTTL)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(logger)

	// Use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, accountCache, classifier, idGen, retrier, logger, m)
	balanceUC := usecase.NewBalanceUseCase(accountRepo, balanceRepo, logger)
	journalUC := usecase.NewJournalUseCase(txManager, journalRepo, expenseRepo, accountUC, idGen, logger, m)
	reconUC := usecase.NewReconciliationUseCase(txManager, accountRepo, reconRepo, balanceRepo, ledgerRepo, idGen, logger, m)
	reportUC := usecase.NewReportUseCase(reportRepo, accountRepo, balanceRepo, logger)
	saleUC := usecase.NewSaleUseCase(txManager, saleRepo, journalRepo, journalUC, idGen, logger)

	rateLimiter := newRateLimiter(cfg, m)
	if rateLimiter != nil {
		go cleanupLimiters(ctx, rateLimiter)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:        handler.NewAccountHandler(accountUC, balanceUC),
		JournalHandler:        handler.NewJournalHandler(journalUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconUC),
		ReportHandler:         handler.NewReportHandler(reportUC, balanceUC),
		SaleHandler:           handler.NewSaleHandler(saleUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:      idempotencyStore,
		IdempotencyTTL:        cfg.IdempotencyTTL,
		TokenVerifier:         newTokenVerifier(cfg),
		RateLimiter:           rateLimiter,
		Metrics:               m,
		CORSAllowedOrigins:    cfg.CORSAllowedOrigins,
		Logger:                logger,
	})

	server := newHTTPServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("port", cfg.HTTPPort).
			Bool("auth_enabled", cfg.AuthEnabled).
			Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

// newTokenVerifier returns nil when authentication is disabled so the router
// skips the auth middleware.
func newTokenVerifier(cfg *config.Config) middleware.TokenVerifier {
	if !cfg.AuthEnabled {
		return nil
	}
	return auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
}

// newRateLimiter returns nil when RATE_LIMIT_RPS is 0.
func newRateLimiter(cfg *config.Config, m *metrics.Metrics) *middleware.RateLimiter {
	if cfg.RateLimitRPS == 0 {
		return nil
	}
	burst := cfg.RateLimitBurst
	if burst == 0 {
		burst = 1
	}
	return middleware.NewRateLimiter(cfg.RateLimitRPS, burst, m)
}

func cleanupLimiters(ctx context.Context, rl *middleware.RateLimiter) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.CleanupLimiters()
		}
	}
}
