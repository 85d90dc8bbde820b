package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gobooks/internal/adapter/http/handler"
	"github.com/iho/gobooks/internal/adapter/http/middleware"
	"github.com/iho/gobooks/internal/infrastructure/metrics"
	"github.com/iho/gobooks/internal/usecase"
)

// RouterConfig holds dependencies for the router. Optional parts are
// skipped when nil.
type RouterConfig struct {
	AccountHandler        *handler.AccountHandler
	JournalHandler        *handler.JournalHandler
	ReconciliationHandler *handler.ReconciliationHandler
	ReportHandler         *handler.ReportHandler
	SaleHandler           *handler.SaleHandler
	HealthHandler         *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration

	TokenVerifier middleware.TokenVerifier
	RateLimiter   *middleware.RateLimiter
	Metrics       *metrics.Metrics

	CORSAllowedOrigins []string
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(corsOptions(cfg.CORSAllowedOrigins)))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.TokenVerifier != nil {
			r.Use(middleware.Auth(cfg.TokenVerifier, cfg.Metrics))
		}
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
		}

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", cfg.AccountHandler.List)
			r.Post("/resolve", cfg.AccountHandler.Resolve)
			r.Get("/code/{code}", cfg.AccountHandler.GetByCode)
			r.Get("/code/{code}/balance", cfg.AccountHandler.BalanceByCode)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/balance", cfg.AccountHandler.Balance)
			r.Get("/{id}/lines", cfg.JournalHandler.ListAccountLines)
			r.Get("/{id}/reconciliations", cfg.ReconciliationHandler.ListByAccount)
		})

		r.Route("/journal-entries", func(r chi.Router) {
			r.Post("/", cfg.JournalHandler.Post)
			r.Get("/{id}", cfg.JournalHandler.Get)
			r.Post("/{id}/reverse", cfg.JournalHandler.Reverse)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", cfg.JournalHandler.RecordExpense)
			r.Post("/journal", cfg.JournalHandler.PostExpense)
		})

		if cfg.SaleHandler != nil {
			r.Route("/sales", func(r chi.Router) {
				r.Post("/", cfg.SaleHandler.Post)
				r.Post("/{id}/refund", cfg.SaleHandler.Refund)
			})
		}

		r.Post("/reconciliations", cfg.ReconciliationHandler.Reconcile)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", cfg.ReportHandler.Summary)
			r.Get("/expense-consistency", cfg.ReportHandler.ExpenseConsistency)
			r.Get("/trial-balance", cfg.ReportHandler.TrialBalance)
			r.Get("/profit-and-loss", cfg.ReportHandler.ProfitAndLoss)
			r.Get("/balance-sheet", cfg.ReportHandler.BalanceSheet)
		})

		r.Get("/ledger/consistency", cfg.ReconciliationHandler.CheckLedgerConsistency)
	})

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.IdempotencyKeyHeader},
		ExposedHeaders:   []string{middleware.IdempotencyReplayHeader, "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}
}
