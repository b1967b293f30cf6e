package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mindwell/creditledger/internal/adapter/http/handler"
	"github.com/mindwell/creditledger/internal/adapter/http/middleware"
	"github.com/mindwell/creditledger/internal/infrastructure/auth"
	"github.com/mindwell/creditledger/internal/infrastructure/metrics"
	"github.com/mindwell/creditledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler        *handler.AccountHandler
	TransferHandler       *handler.TransferHandler
	EntryHandler          *handler.EntryHandler
	SettlementHandler     *handler.SettlementHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	JWTManager       *auth.JWTManager
	AuthEnabled      bool
	RateLimiter      *middleware.RateLimiter
	// TransferRateLimiter, when set, applies on top of the global limiter
	// to POST /transfers only.
	TransferRateLimiter *middleware.RateLimiter
	Metrics             *metrics.Metrics
	Logger              zerolog.Logger
}

// NewRouter creates the HTTP router. The settlement webhook stays outside
// the authenticated group: it is protected by its payload signature, and the
// settlement reference guard makes redelivery safe without an
// Idempotency-Key.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/webhooks/settlements", cfg.SettlementHandler.Receive)

		r.Group(func(r chi.Router) {
			if cfg.JWTManager != nil {
				if cfg.AuthEnabled {
					r.Use(middleware.AuthMiddleware(cfg.JWTManager))
				} else {
					r.Use(middleware.OptionalAuth(cfg.JWTManager))
				}
			}

			if cfg.IdempotencyStore != nil {
				r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
			}

			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", cfg.AccountHandler.Provision)
				r.Get("/", cfg.AccountHandler.List)
				r.Get("/{id}", cfg.AccountHandler.Get)
				r.Get("/{id}/balance", cfg.AccountHandler.GetBalance)
				r.Get("/{id}/entries", cfg.EntryHandler.ListByAccount)
			})

			if cfg.TransferRateLimiter != nil {
				r.With(cfg.TransferRateLimiter.Limit).Post("/transfers", cfg.TransferHandler.Create)
			} else {
				r.Post("/transfers", cfg.TransferHandler.Create)
			}
			r.Get("/entries/{id}", cfg.EntryHandler.Get)

			r.Route("/reconciliation", func(r chi.Router) {
				r.Get("/", cfg.ReconciliationHandler.Report)
				r.Get("/{id}", cfg.ReconciliationHandler.Account)
			})
		})
	})

	return r
}
