package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/stockledger/internal/usecase/mocks"
)

func newTestIdempotency(store *mocks.FakeIdempotencyStore) *IdempotencyMiddleware {
	return NewIdempotencyMiddleware(store, time.Hour, zerolog.Nop())
}

func postWithKey(key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stock-cards/card-1/events", bytes.NewBufferString(`{}`))
	req.Header.Set(IdempotencyKeyHeader, key)
	return req
}

func TestIdempotencyMiddleware_FailsClosedOnStoreErrors(t *testing.T) {
	var called bool
	store := mocks.NewFakeIdempotencyStore()
	store.CheckAndSetFunc = func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
		return false, nil, context.DeadlineExceeded
	}

	rr := httptest.NewRecorder()
	newTestIdempotency(store).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, postWithKey("key-err"))

	if called {
		t.Fatalf("handler should not be called when store errors")
	}
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}

func TestIdempotencyMiddleware_ReleasesKeyOnFailure(t *testing.T) {
	store := mocks.NewFakeIdempotencyStore()
	mw := newTestIdempotency(store)

	calls := 0
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, postWithKey("key-fail"))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, postWithKey("key-fail"))

	if calls != 2 {
		t.Fatalf("expected a failed request to be retryable, handler ran %d times", calls)
	}
	if second.Code != http.StatusCreated {
		t.Fatalf("expected retry to succeed, got %d", second.Code)
	}
}

func TestIdempotencyMiddleware_SkipsNonMutatingRequests(t *testing.T) {
	mw := newTestIdempotency(mocks.NewFakeIdempotencyStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stock-cards", nil)
	req.Header.Set(IdempotencyKeyHeader, "key")
	rr := httptest.NewRecorder()

	called := false
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	if !called {
		t.Fatalf("expected next handler to be called")
	}
}

func TestIdempotencyMiddleware_ReplaysStatusAndBody(t *testing.T) {
	mw := newTestIdempotency(mocks.NewFakeIdempotencyStore())

	calls := 0
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"stock_on_hand":20}`))
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, postWithKey("key-456"))
	replay := httptest.NewRecorder()
	handler.ServeHTTP(replay, postWithKey("key-456"))

	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
	if replay.Code != http.StatusCreated {
		t.Fatalf("expected replayed 201, got %d", replay.Code)
	}
	if replay.Header().Get(IdempotencyReplayHeader) != "true" {
		t.Fatalf("expected replay header to be set")
	}
	if got := replay.Body.String(); got != `{"stock_on_hand":20}` {
		t.Fatalf("unexpected replayed body: %s", got)
	}
}

func TestIdempotencyMiddleware_InFlightKeyConflicts(t *testing.T) {
	store := mocks.NewFakeIdempotencyStore()
	mw := newTestIdempotency(store)

	// Claim the key as an in-flight request would.
	if _, _, err := store.CheckAndSet(context.Background(), "http:POST:/api/v1/stock-cards/card-1/events:busy", nil, time.Hour); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run while the key is in flight")
	})).ServeHTTP(rr, postWithKey("busy"))

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestIdempotencyMiddleware_KeysAreScopedByPath(t *testing.T) {
	mw := newTestIdempotency(mocks.NewFakeIdempotencyStore())

	calls := 0
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), postWithKey("shared"))

	other := httptest.NewRequest(http.MethodPost, "/api/v1/stock-cards/card-2/events", bytes.NewBufferString(`{}`))
	other.Header.Set(IdempotencyKeyHeader, "shared")
	handler.ServeHTTP(httptest.NewRecorder(), other)

	if calls != 2 {
		t.Fatalf("expected the same key on another card to run, ran %d times", calls)
	}
}
