package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

// FakeTransaction buffers writes until Commit. Rolled back writes are dropped.
type FakeTransaction struct {
	mu         sync.Mutex
	pending    []func()
	Committed  bool
	RolledBack bool

	CommitFunc func(ctx context.Context) error
}

func (t *FakeTransaction) enqueue(op func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = append(t.pending, op)
}

func (t *FakeTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		if err := t.CommitFunc(ctx); err != nil {
			return err
		}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, op := range t.pending {
		op()
	}
	t.pending = nil
	t.Committed = true
	return nil
}

func (t *FakeTransaction) Rollback(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.Committed {
		t.pending = nil
		t.RolledBack = true
	}
	return nil
}

// runInTx applies op at commit time when tx is a FakeTransaction, immediately otherwise.
func runInTx(tx usecase.Transaction, op func()) {
	if ft, ok := tx.(*FakeTransaction); ok {
		ft.enqueue(op)
		return
	}
	op()
}

// FakeTransactionManager hands out FakeTransactions and keeps them for inspection.
type FakeTransactionManager struct {
	mu  sync.Mutex
	Txs []*FakeTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewFakeTransactionManager() *FakeTransactionManager {
	return &FakeTransactionManager{}
}

func (m *FakeTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &FakeTransaction{}
	m.Txs = append(m.Txs, tx)
	return tx, nil
}

// FakeStockCardRepository is an in-memory StockCardRepository.
type FakeStockCardRepository struct {
	mu    sync.RWMutex
	cards map[string]*domain.StockCard
	order []string

	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.StockCard, error)
	UpdateStockOnHandFunc func(ctx context.Context, tx usecase.Transaction, id string, stockOnHand int, expectedVersion, newVersion int64, updatedAt time.Time) error
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.StockCard, error)
}

func NewFakeStockCardRepository(cards ...*domain.StockCard) *FakeStockCardRepository {
	r := &FakeStockCardRepository{cards: make(map[string]*domain.StockCard)}
	for _, c := range cards {
		_ = r.Create(context.Background(), c)
	}
	return r
}

func (r *FakeStockCardRepository) Create(_ context.Context, card *domain.StockCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cards[card.ID]; ok {
		return fmt.Errorf("stock card %s already exists", card.ID)
	}
	c := *card
	c.LineItems = nil
	r.cards[card.ID] = &c
	r.order = append(r.order, card.ID)
	return nil
}

func (r *FakeStockCardRepository) GetByID(_ context.Context, id string) (*domain.StockCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cards[id]
	if !ok {
		return nil, domain.ErrStockCardNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *FakeStockCardRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.StockCard, error) {
	if r.GetByIDForUpdateFunc != nil {
		return r.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return r.GetByID(ctx, id)
}

func (r *FakeStockCardRepository) UpdateStockOnHand(ctx context.Context, tx usecase.Transaction, id string, stockOnHand int, expectedVersion, newVersion int64, updatedAt time.Time) error {
	if r.UpdateStockOnHandFunc != nil {
		return r.UpdateStockOnHandFunc(ctx, tx, id, stockOnHand, expectedVersion, newVersion, updatedAt)
	}
	r.mu.RLock()
	c, ok := r.cards[id]
	r.mu.RUnlock()
	if !ok {
		return domain.ErrStockCardNotFound
	}
	if c.Version != expectedVersion {
		return domain.ErrConcurrentModification
	}
	runInTx(tx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		c.StockOnHand = stockOnHand
		c.Version = newVersion
		c.UpdatedAt = updatedAt
	})
	return nil
}

func (r *FakeStockCardRepository) List(ctx context.Context, limit, offset int) ([]*domain.StockCard, error) {
	if r.ListFunc != nil {
		return r.ListFunc(ctx, limit, offset)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.StockCard
	for i := offset; i < len(r.order) && len(out) < limit; i++ {
		cp := *r.cards[r.order[i]]
		out = append(out, &cp)
	}
	return out, nil
}

// SetStockOnHand overwrites a cached balance, simulating drift.
func (r *FakeStockCardRepository) SetStockOnHand(id string, stockOnHand int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards[id].StockOnHand = stockOnHand
}

// FakeLineItemRepository is an in-memory LineItemRepository.
type FakeLineItemRepository struct {
	mu    sync.RWMutex
	items map[string][]*domain.LineItem

	AppendFunc func(ctx context.Context, tx usecase.Transaction, item *domain.LineItem) error
}

func NewFakeLineItemRepository() *FakeLineItemRepository {
	return &FakeLineItemRepository{items: make(map[string][]*domain.LineItem)}
}

func (r *FakeLineItemRepository) Append(ctx context.Context, tx usecase.Transaction, item *domain.LineItem) error {
	if r.AppendFunc != nil {
		return r.AppendFunc(ctx, tx, item)
	}
	cp := *item
	runInTx(tx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.items[cp.StockCardID] = append(r.items[cp.StockCardID], &cp)
	})
	return nil
}

func (r *FakeLineItemRepository) ListByStockCard(_ context.Context, stockCardID string, limit, offset int) ([]*domain.LineItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.sorted(stockCardID)
	if offset >= len(all) {
		return []*domain.LineItem{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (r *FakeLineItemRepository) ListAllByStockCard(_ context.Context, stockCardID string) ([]*domain.LineItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(stockCardID), nil
}

func (r *FakeLineItemRepository) sorted(stockCardID string) []*domain.LineItem {
	out := make([]*domain.LineItem, len(r.items[stockCardID]))
	copy(out, r.items[stockCardID])
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out
}

// Put stores items directly, bypassing transactions.
func (r *FakeLineItemRepository) Put(items ...*domain.LineItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.items[item.StockCardID] = append(r.items[item.StockCardID], item)
	}
}

// FakeReasonRepository is an in-memory ReasonRepository.
type FakeReasonRepository struct {
	mu      sync.RWMutex
	reasons map[string]*domain.Reason
	order   []string

	GetByIDFunc func(ctx context.Context, id string) (*domain.Reason, error)
}

func NewFakeReasonRepository(reasons ...*domain.Reason) *FakeReasonRepository {
	r := &FakeReasonRepository{reasons: make(map[string]*domain.Reason)}
	for _, reason := range reasons {
		_ = r.Create(context.Background(), reason)
	}
	return r
}

func (r *FakeReasonRepository) Create(_ context.Context, reason *domain.Reason) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reasons[reason.ID] = reason
	r.order = append(r.order, reason.ID)
	return nil
}

func (r *FakeReasonRepository) GetByID(ctx context.Context, id string) (*domain.Reason, error) {
	if r.GetByIDFunc != nil {
		return r.GetByIDFunc(ctx, id)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if reason, ok := r.reasons[id]; ok {
		return reason, nil
	}
	return nil, domain.NewReasonNotFoundError(id)
}

func (r *FakeReasonRepository) List(_ context.Context, limit, offset int) ([]*domain.Reason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Reason
	for i := offset; i < len(r.order) && len(out) < limit; i++ {
		out = append(out, r.reasons[r.order[i]])
	}
	return out, nil
}

// FakeNodeRepository is an in-memory NodeRepository.
type FakeNodeRepository struct {
	mu    sync.RWMutex
	nodes map[string]*domain.Node
	order []string
}

func NewFakeNodeRepository(nodes ...*domain.Node) *FakeNodeRepository {
	r := &FakeNodeRepository{nodes: make(map[string]*domain.Node)}
	for _, node := range nodes {
		_ = r.Create(context.Background(), node)
	}
	return r
}

func (r *FakeNodeRepository) Create(_ context.Context, node *domain.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes[node.ID] = node
	r.order = append(r.order, node.ID)
	return nil
}

func (r *FakeNodeRepository) GetByID(_ context.Context, id string) (*domain.Node, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if node, ok := r.nodes[id]; ok {
		return node, nil
	}
	return nil, domain.NewNodeNotFoundError(id)
}

func (r *FakeNodeRepository) List(_ context.Context, limit, offset int) ([]*domain.Node, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Node
	for i := offset; i < len(r.order) && len(out) < limit; i++ {
		out = append(out, r.nodes[r.order[i]])
	}
	return out, nil
}

// FakeOutboxRepository is an in-memory OutboxRepository.
type FakeOutboxRepository struct {
	mu     sync.RWMutex
	Events []*domain.OutboxEvent
}

func NewFakeOutboxRepository() *FakeOutboxRepository {
	return &FakeOutboxRepository{}
}

func (r *FakeOutboxRepository) Create(_ context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	runInTx(tx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.Events = append(r.Events, event)
	})
	return nil
}

func (r *FakeOutboxRepository) GetUnpublished(_ context.Context, limit int) ([]*domain.OutboxEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range r.Events {
		if !e.Published && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *FakeOutboxRepository) MarkPublished(_ context.Context, id string, publishedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.Events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (r *FakeOutboxRepository) DeletePublished(_ context.Context, before time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.Events[:0]
	for _, e := range r.Events {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			continue
		}
		kept = append(kept, e)
	}
	r.Events = kept
	return nil
}

// FakeIDGenerator returns "<prefix>-1", "<prefix>-2", ...
type FakeIDGenerator struct {
	mu      sync.Mutex
	Prefix  string
	counter int
}

func NewFakeIDGenerator(prefix string) *FakeIDGenerator {
	return &FakeIDGenerator{Prefix: prefix}
}

func (g *FakeIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s-%d", g.Prefix, g.counter)
}

// FakeClock is a settable Clock.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// FakeIdempotencyStore is an in-memory IdempotencyStore.
type FakeIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
}

func NewFakeIdempotencyStore() *FakeIdempotencyStore {
	return &FakeIdempotencyStore{data: make(map[string][]byte)}
}

func (m *FakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *FakeIdempotencyStore) Update(_ context.Context, key string, response []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *FakeIdempotencyStore) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Get returns the stored value for key.
func (m *FakeIdempotencyStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}
