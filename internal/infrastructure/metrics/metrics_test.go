package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/stockledger/internal/domain"
)

func TestNewWithRegistryRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewWithRegistry(registry)

	if m.LineItemsRecorded == nil || m.HTTPRequests == nil || m.OutboxPublished == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.ObserveRecordDuration(10 * time.Millisecond)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestObserveLineItem(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.ObserveLineItem(&domain.LineItem{Kind: domain.KindCredit, Quantity: 5, StockOnHand: 5})
	m.ObserveLineItem(&domain.LineItem{Kind: domain.KindDebit, Quantity: 8, StockOnHand: -3})
	m.ObserveLineItem(&domain.LineItem{Kind: domain.KindCredit, Quantity: 1, StockOnHand: -2})

	if got := testutil.ToFloat64(m.LineItemsRecorded.WithLabelValues("CREDIT")); got != 2 {
		t.Fatalf("expected 2 credits, got %v", got)
	}
	if got := testutil.ToFloat64(m.LineItemsRecorded.WithLabelValues("DEBIT")); got != 1 {
		t.Fatalf("expected 1 debit, got %v", got)
	}
	if got := testutil.ToFloat64(m.NegativeBalances); got != 2 {
		t.Fatalf("expected 2 negative balances, got %v", got)
	}
}

func TestObserveRecordError(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.ObserveRecordError(fmt.Errorf("resolve reason: %w", domain.NewReasonNotFoundError("r-1")))
	m.ObserveRecordError(domain.ErrNegativeStockOnHand)

	if got := testutil.ToFloat64(m.RecordErrors.WithLabelValues("reference_not_found")); got != 1 {
		t.Fatalf("expected reference error counted, got %v", got)
	}
	if got := testutil.ToFloat64(m.RecordErrors.WithLabelValues("negative_stock_on_hand")); got != 1 {
		t.Fatalf("expected negative stock error counted, got %v", got)
	}
}

func TestObserveReconciliation(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.ObserveReconciliation(3)
	m.ObserveReconciliation(1)

	if got := testutil.ToFloat64(m.ReconciliationRuns); got != 2 {
		t.Fatalf("expected 2 runs, got %v", got)
	}
	if got := testutil.ToFloat64(m.ReconciliationDiscrepancies); got != 1 {
		t.Fatalf("expected gauge to hold last report, got %v", got)
	}
}

func TestErrorType(t *testing.T) {
	testCases := []struct {
		err      error
		expected string
	}{
		{nil, "none"},
		{domain.ErrStockCardNotFound, "stock_card_not_found"},
		{domain.NewNodeNotFoundError("n-1"), "reference_not_found"},
		{domain.ErrInvalidShape, "invalid_shape"},
		{fmt.Errorf("%w: -1", domain.ErrInvalidQuantity), "invalid_quantity"},
		{domain.ErrInvalidOccurredDate, "invalid_occurred_date"},
		{domain.ErrConcurrentModification, "concurrent_modification"},
		{domain.ErrInvalidActorID, "validation"},
		{errors.New("boom"), "internal"},
	}

	for _, tc := range testCases {
		if got := ErrorType(tc.err); got != tc.expected {
			t.Fatalf("ErrorType(%v) = %q, expected %q", tc.err, got, tc.expected)
		}
	}
}
