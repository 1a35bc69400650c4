package postgres

import (
	"context"
	"time"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

// NullOutboxRepository drops events. Used when the outbox publisher is disabled.
type NullOutboxRepository struct{}

// NewNullOutboxRepository creates a new NullOutboxRepository.
func NewNullOutboxRepository() *NullOutboxRepository {
	return &NullOutboxRepository{}
}

func (r *NullOutboxRepository) Create(context.Context, usecase.Transaction, *domain.OutboxEvent) error {
	return nil
}

func (r *NullOutboxRepository) GetUnpublished(context.Context, int) ([]*domain.OutboxEvent, error) {
	return nil, nil
}

func (r *NullOutboxRepository) MarkPublished(context.Context, string, time.Time) error {
	return nil
}

func (r *NullOutboxRepository) DeletePublished(context.Context, time.Time) error {
	return nil
}
