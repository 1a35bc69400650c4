package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/stockledger/internal/adapter/http/handler"
	"github.com/iho/stockledger/internal/adapter/http/middleware"
	"github.com/iho/stockledger/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	StockCardHandler      *handler.StockCardHandler
	ReconciliationHandler *handler.ReconciliationHandler
	ReferenceDataHandler  *handler.ReferenceDataHandler
	HealthHandler         *handler.HealthHandler

	Idempotency *middleware.IdempotencyMiddleware // optional
	RateLimiter *middleware.RateLimiter           // optional
	Metrics     *metrics.Metrics                  // optional
	MetricsPath string                            // served when Metrics is set; defaults to /metrics

	AllowedOrigins []string
	Logger         zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.IdempotencyKeyHeader, handler.ActorIDHeader},
			ExposedHeaders: []string{middleware.IdempotencyReplayHeader},
			MaxAge:         300,
		}))
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Idempotency != nil {
			r.Use(cfg.Idempotency.Wrap)
		}

		r.Route("/stock-cards", func(r chi.Router) {
			r.Post("/", cfg.StockCardHandler.Create)
			r.Get("/", cfg.StockCardHandler.List)
			r.Get("/{id}", cfg.StockCardHandler.Get)
			r.Post("/{id}/events", cfg.StockCardHandler.RecordEvent)
			r.Get("/{id}/line-items", cfg.StockCardHandler.ListLineItems)
			r.Get("/{id}/stock-on-hand", cfg.StockCardHandler.GetStockOnHand)
			r.Get("/{id}/reconciliation", cfg.ReconciliationHandler.ReconcileCard)
		})

		r.Get("/reconciliation", cfg.ReconciliationHandler.Report)

		r.Route("/reasons", func(r chi.Router) {
			r.Post("/", cfg.ReferenceDataHandler.CreateReason)
			r.Get("/", cfg.ReferenceDataHandler.ListReasons)
			r.Get("/{id}", cfg.ReferenceDataHandler.GetReason)
		})

		r.Route("/nodes", func(r chi.Router) {
			r.Post("/", cfg.ReferenceDataHandler.CreateNode)
			r.Get("/", cfg.ReferenceDataHandler.ListNodes)
			r.Get("/{id}", cfg.ReferenceDataHandler.GetNode)
		})
	})

	return r
}
