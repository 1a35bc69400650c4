package usecase

import (
	"context"
	"time"

	"github.com/iho/stockledger/internal/domain"
)

// StockCardRepository defines data access for stock cards.
type StockCardRepository interface {
	Create(ctx context.Context, card *domain.StockCard) error
	GetByID(ctx context.Context, id string) (*domain.StockCard, error)
	// GetByIDForUpdate locks the card row until tx ends. All appends to one
	// card go through this lock.
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.StockCard, error)
	// UpdateStockOnHand stores the new balance and version if the stored version
	// still equals expectedVersion, else returns domain.ErrConcurrentModification.
	UpdateStockOnHand(ctx context.Context, tx Transaction, id string, stockOnHand int, expectedVersion, newVersion int64, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.StockCard, error)
}

// LineItemRepository is the append-only movement history of stock cards.
type LineItemRepository interface {
	Append(ctx context.Context, tx Transaction, item *domain.LineItem) error
	// ListByStockCard returns items in append order.
	ListByStockCard(ctx context.Context, stockCardID string, limit, offset int) ([]*domain.LineItem, error)
	// ListAllByStockCard returns the full history in append order.
	ListAllByStockCard(ctx context.Context, stockCardID string) ([]*domain.LineItem, error)
}

// ReasonRepository is the reason directory.
type ReasonRepository interface {
	Create(ctx context.Context, reason *domain.Reason) error
	GetByID(ctx context.Context, id string) (*domain.Reason, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Reason, error)
}

// NodeRepository is the node directory.
type NodeRepository interface {
	Create(ctx context.Context, node *domain.Node) error
	GetByID(ctx context.Context, id string) (*domain.Node, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Node, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the recording time of line items.
type Clock interface {
	Now() time.Time
}

// Metrics records movement outcomes.
type Metrics interface {
	ObserveLineItem(item *domain.LineItem)
	ObserveRecordError(err error)
	ObserveRecordDuration(d time.Duration)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so the request can be retried.
	Release(ctx context.Context, key string) error
}
