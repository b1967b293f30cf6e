package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Transfer metrics
	TransfersCompleted prometheus.Counter
	TransferDuration   prometheus.Histogram
	TransferCredits    prometheus.Histogram
	TransferErrors     *prometheus.CounterVec

	// Settlement metrics
	SettlementsProcessed  prometheus.Counter
	SettlementsDuplicated prometheus.Counter
	SettlementsSkipped    *prometheus.CounterVec
	SettlementErrors      *prometheus.CounterVec

	// Account metrics
	AccountsProvisioned prometheus.Counter
	BalanceCacheHits    prometheus.Counter
	BalanceCacheMisses  prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Outbox metrics
	OutboxPublished     prometheus.Counter
	OutboxPublishErrors prometheus.Counter
	OutboxBacklog       prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits prometheus.Counter

	// Reconciliation metrics
	ReconciliationRuns          prometheus.Counter
	ReconciliationDiscrepancies prometheus.Gauge
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransfersCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_transfers_completed_total",
			Help: "Total number of completed credit transfers",
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "creditledger_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferCredits: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "creditledger_transfer_credits",
			Help:    "Credits moved per transfer",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 10000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),

		SettlementsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_settlements_processed_total",
			Help: "Total number of settlements that credited a balance",
		}),
		SettlementsDuplicated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_settlements_duplicated_total",
			Help: "Total number of settlement redeliveries acknowledged as duplicates",
		}),
		SettlementsSkipped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_settlements_skipped_total",
				Help: "Total number of settlements acknowledged without processing",
			},
			[]string{"reason"},
		),
		SettlementErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_settlement_errors_total",
				Help: "Total number of settlement ingestion errors by type",
			},
			[]string{"error_type"},
		),

		AccountsProvisioned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_accounts_provisioned_total",
			Help: "Total number of accounts provisioned",
		}),
		BalanceCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_balance_cache_hits_total",
			Help: "Balance reads served from cache",
		}),
		BalanceCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_balance_cache_misses_total",
			Help: "Balance reads that fell through to the store",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "creditledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		OutboxPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_outbox_published_total",
			Help: "Total outbox events published",
		}),
		OutboxPublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_outbox_publish_errors_total",
			Help: "Total outbox publish failures",
		}),
		OutboxBacklog: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "creditledger_outbox_backlog",
			Help: "Unpublished outbox events at last relay pass",
		}),

		RateLimitHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		}),

		ReconciliationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_reconciliation_runs_total",
			Help: "Total reconciliation report runs",
		}),
		ReconciliationDiscrepancies: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "creditledger_reconciliation_discrepancies",
			Help: "Accounts whose balance disagreed with the ledger at last run",
		}),
	}
}
