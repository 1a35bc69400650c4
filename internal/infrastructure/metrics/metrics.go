package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/stockledger/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Movement metrics
	LineItemsRecorded *prometheus.CounterVec
	LineItemQuantity  *prometheus.HistogramVec
	RecordDuration    prometheus.Histogram
	RecordErrors      *prometheus.CounterVec
	NegativeBalances  prometheus.Counter

	// Reconciliation metrics
	ReconciliationRuns          prometheus.Counter
	ReconciliationDiscrepancies prometheus.Gauge

	// API metrics
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	HTTPInFlight  prometheus.Gauge
	RateLimitHits prometheus.Counter

	// Messaging metrics
	OutboxPublished prometheus.Counter
	OutboxFailures  prometheus.Counter
	KafkaConsumed   *prometheus.CounterVec
}

// New creates all metrics on the default Prometheus registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates all metrics on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Movement metrics
		LineItemsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockledger_line_items_recorded_total",
				Help: "Total number of line items appended, by movement kind",
			},
			[]string{"kind"},
		),
		LineItemQuantity: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockledger_line_item_quantity",
				Help:    "Quantities carried by appended line items",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
			},
			[]string{"kind"},
		),
		RecordDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockledger_record_movement_duration_seconds",
			Help:    "Duration of record movement operations",
			Buckets: prometheus.DefBuckets,
		}),
		RecordErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockledger_record_movement_errors_total",
				Help: "Total number of rejected or failed movements by type",
			},
			[]string{"error_type"},
		),
		NegativeBalances: factory.NewCounter(prometheus.CounterOpts{
			Name: "stockledger_negative_stock_on_hand_total",
			Help: "Total number of line items that left a card below zero",
		}),

		// Reconciliation metrics
		ReconciliationRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "stockledger_reconciliation_runs_total",
			Help: "Total number of reconciliation reports generated",
		}),
		ReconciliationDiscrepancies: factory.NewGauge(prometheus.GaugeOpts{
			Name: "stockledger_reconciliation_discrepancies",
			Help: "Stock cards that disagreed with their history in the last report",
		}),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "stockledger_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "stockledger_rate_limit_hits_total",
			Help: "Total requests refused by the rate limiter",
		}),

		// Messaging metrics
		OutboxPublished: factory.NewCounter(prometheus.CounterOpts{
			Name: "stockledger_outbox_published_total",
			Help: "Total outbox events published",
		}),
		OutboxFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "stockledger_outbox_failures_total",
			Help: "Total outbox events that failed to publish",
		}),
		KafkaConsumed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockledger_kafka_messages_consumed_total",
				Help: "Total movement messages consumed, by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// ObserveLineItem records an appended line item.
func (m *Metrics) ObserveLineItem(item *domain.LineItem) {
	kind := item.Kind.String()
	m.LineItemsRecorded.WithLabelValues(kind).Inc()
	m.LineItemQuantity.WithLabelValues(kind).Observe(float64(item.Quantity))

	if item.StockOnHand < 0 {
		m.NegativeBalances.Inc()
	}
}

// ObserveRecordError records a failed movement.
func (m *Metrics) ObserveRecordError(err error) {
	m.RecordErrors.WithLabelValues(ErrorType(err)).Inc()
}

// ObserveRecordDuration records how long a movement took.
func (m *Metrics) ObserveRecordDuration(d time.Duration) {
	m.RecordDuration.Observe(d.Seconds())
}

// ObserveReconciliation records the outcome of a reconciliation report.
func (m *Metrics) ObserveReconciliation(discrepancies int) {
	m.ReconciliationRuns.Inc()
	m.ReconciliationDiscrepancies.Set(float64(discrepancies))
}

// ErrorType maps an error to a low-cardinality label.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, domain.ErrStockCardNotFound):
		return "stock_card_not_found"
	case errors.Is(err, domain.ErrReferenceNotFound):
		return "reference_not_found"
	case errors.Is(err, domain.ErrInvalidShape):
		return "invalid_shape"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrInvalidOccurredDate):
		return "invalid_occurred_date"
	case errors.Is(err, domain.ErrNegativeStockOnHand):
		return "negative_stock_on_hand"
	case errors.Is(err, domain.ErrConcurrentModification):
		return "concurrent_modification"
	case errors.Is(err, domain.ErrInvalidActorID), errors.Is(err, domain.ErrInvalidFreeText):
		return "validation"
	default:
		return "internal"
	}
}

// EventPublished counts an outbox event delivered downstream.
func (m *Metrics) EventPublished() {
	m.OutboxPublished.Inc()
}

// EventFailed counts an outbox event that could not be delivered.
func (m *Metrics) EventFailed() {
	m.OutboxFailures.Inc()
}

// MessageConsumed counts a consumed movement message by outcome.
func (m *Metrics) MessageConsumed(outcome string) {
	m.KafkaConsumed.WithLabelValues(outcome).Inc()
}
