package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/stockledger/internal/adapter/http/handler"
	apimiddleware "github.com/iho/stockledger/internal/adapter/http/middleware"
	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/infrastructure/metrics"
	"github.com/iho/stockledger/internal/usecase"
	"github.com/iho/stockledger/internal/usecase/mocks"
)

const routerTestActor = "9f1c2b9e-1f6e-4a53-9d7b-3f8f0f6a4e21"

var routerTestReceipt = &domain.Reason{
	ID:       "r-receipt",
	Name:     "Receipts",
	Type:     domain.ReasonTypeCredit,
	Category: domain.ReasonCategoryAdjustment,
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cards := mocks.NewFakeStockCardRepository(&domain.StockCard{
		ID:          "card-1",
		FacilityID:  "fac-1",
		ProgramID:   "prog-1",
		OrderableID: "ord-1",
	})
	items := mocks.NewFakeLineItemRepository()
	reasons := mocks.NewFakeReasonRepository(routerTestReceipt)
	nodes := mocks.NewFakeNodeRepository()

	factory := usecase.NewLineItemFactory(reasons, nodes, mocks.NewFakeIDGenerator("li"), nil)
	events := usecase.NewStockEventUseCase(
		mocks.NewFakeTransactionManager(),
		cards,
		items,
		mocks.NewFakeOutboxRepository(),
		factory,
		mocks.NewFakeIDGenerator("evt"),
	)

	cfg := RouterConfig{
		StockCardHandler: handler.NewStockCardHandler(
			usecase.NewStockCardUseCase(cards, items, mocks.NewFakeIDGenerator("card"), nil),
			events,
		),
		ReconciliationHandler: handler.NewReconciliationHandler(usecase.NewReconciliationUseCase(cards, items, nil), nil),
		ReferenceDataHandler: handler.NewReferenceDataHandler(
			usecase.NewReferenceDataUseCase(reasons, nodes, mocks.NewFakeIDGenerator("ref"), nil),
		),
		HealthHandler: handler.NewHealthHandler(),
		Logger:        zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func serve(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := serve(router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_ReadinessReportsFailingCheck(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.HealthHandler = handler.NewHealthHandler(handler.HealthCheck{
			Name:  "postgres",
			Check: func(context.Context) error { return errors.New("connection refused") },
		})
	}))

	rec := serve(router, http.MethodGet, "/ready", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected /ready to return 503, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	hits := 0
	rl := apimiddleware.NewRateLimiter(1, 1, func() { hits++ })
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
	if hits != 1 {
		t.Fatalf("expected one limit callback, got %d", hits)
	}
}

func TestNewRouter_RecordsMovementAndReportsBalance(t *testing.T) {
	router := NewRouter(newRouterConfig())

	count := `{"actor_id":"` + routerTestActor + `","quantity":10,"occurred_date":"2024-01-05"}`
	rec := serve(router, http.MethodPost, "/api/v1/stock-cards/card-1/events", count, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for physical count, got %d: %s", rec.Code, rec.Body.String())
	}

	receipt := `{"quantity":5,"reason_id":"r-receipt","occurred_date":"2024-01-06"}`
	rec = serve(router, http.MethodPost, "/api/v1/stock-cards/card-1/events", receipt,
		map[string]string{handler.ActorIDHeader: routerTestActor})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for receipt, got %d: %s", rec.Code, rec.Body.String())
	}

	var recorded struct {
		StockOnHand int `json:"stock_on_hand"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &recorded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if recorded.StockOnHand != 15 {
		t.Fatalf("expected stock on hand 15, got %d", recorded.StockOnHand)
	}

	rec = serve(router, http.MethodGet, "/api/v1/stock-cards/card-1/reconciliation", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected reconciliation to return 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"is_reconciled":true`) {
		t.Fatalf("expected reconciled card, got %s", rec.Body.String())
	}
}

func TestNewRouter_UnknownStockCardIsNotFound(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := serve(router, http.MethodGet, "/api/v1/stock-cards/missing", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyReplaysResponse(t *testing.T) {
	store := mocks.NewFakeIdempotencyStore()
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.Idempotency = apimiddleware.NewIdempotencyMiddleware(store, time.Hour, zerolog.Nop())
	}))

	body := `{"facility_id":"fac-2","program_id":"prog-1","orderable_id":"ord-9"}`
	headers := map[string]string{apimiddleware.IdempotencyKeyHeader: "create-1"}

	first := serve(router, http.MethodPost, "/api/v1/stock-cards", body, headers)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", first.Code, first.Body.String())
	}

	second := serve(router, http.MethodPost, "/api/v1/stock-cards", body, headers)
	if second.Code != http.StatusCreated {
		t.Fatalf("expected replayed 201, got %d", second.Code)
	}
	if second.Header().Get(apimiddleware.IdempotencyReplayHeader) == "" {
		t.Fatal("expected replay header on second response")
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("expected identical bodies, got %q and %q", first.Body.String(), second.Body.String())
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.Metrics = metrics.NewWithRegistry(reg)
		cfg.MetricsPath = "/internal/metrics"
	}))

	rec := serve(router, http.MethodGet, "/internal/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected metrics endpoint to return 200, got %d", rec.Code)
	}

	rec = serve(router, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected default path to be unrouted, got %d", rec.Code)
	}
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.AllowedOrigins = []string{"https://ops.example.org"}
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/stock-cards", nil)
	req.Header.Set("Origin", "https://ops.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://ops.example.org" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
}
