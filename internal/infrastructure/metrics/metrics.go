package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Journal metrics
	EntriesPosted   *prometheus.CounterVec
	PostingDuration prometheus.Histogram
	PostingAmount   prometheus.Histogram
	PostingErrors   *prometheus.CounterVec

	// Account metrics
	AccountsCreated    prometheus.Counter
	AccountResolutions *prometheus.CounterVec

	// Reconciliation metrics
	Reconciliations        prometheus.Counter
	LinesReconciled        prometheus.Counter
	ReconciliationVariance prometheus.Histogram

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Authentication metrics
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates all metrics and registers them with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates all metrics and registers them with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		// Journal metrics
		EntriesPosted: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobooks_journal_entries_posted_total",
				Help: "Total number of journal entries posted by source",
			},
			[]string{"source"},
		),
		PostingDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gobooks_posting_duration_seconds",
			Help:    "Duration of journal posting operations",
			Buckets: prometheus.DefBuckets,
		}),
		PostingAmount: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gobooks_posting_amount",
			Help:    "Total amount of posted journal entries",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		PostingErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobooks_posting_errors_total",
				Help: "Total number of rejected or failed postings by type",
			},
			[]string{"error_type"},
		),

		// Account metrics
		AccountsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "gobooks_accounts_created_total",
			Help: "Total number of accounts created on first use",
		}),
		AccountResolutions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobooks_account_resolutions_total",
				Help: "Account code resolutions by where the id was found",
			},
			[]string{"source"},
		),

		// Reconciliation metrics
		Reconciliations: f.NewCounter(prometheus.CounterOpts{
			Name: "gobooks_reconciliations_total",
			Help: "Total number of reconciliation snapshots recorded",
		}),
		LinesReconciled: f.NewCounter(prometheus.CounterOpts{
			Name: "gobooks_lines_reconciled_total",
			Help: "Total number of journal lines marked reconciled",
		}),
		ReconciliationVariance: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gobooks_reconciliation_variance",
			Help:    "Absolute difference between statement and book balance",
			Buckets: []float64{0.01, 1, 10, 100, 1000, 10000},
		}),

		// Redis metrics
		RedisOperations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobooks_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobooks_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Authentication metrics
		AuthFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobooks_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		// Rate limiting metrics
		RateLimitHits: f.NewCounter(prometheus.CounterOpts{
			Name: "gobooks_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}
