package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/stockledger/internal/domain"
)

// StockEventUseCase records movements against stock cards.
type StockEventUseCase struct {
	txManager    TransactionManager
	cardRepo     StockCardRepository
	lineItemRepo LineItemRepository
	outboxRepo   OutboxRepository
	factory      *LineItemFactory
	idGen        IDGenerator
	retrier      Retrier
	metrics      Metrics
	policy       domain.NegativeStockPolicy
	logger       zerolog.Logger
}

// StockEventOption configures a StockEventUseCase.
type StockEventOption func(*StockEventUseCase)

// WithRetrier retries the whole movement transaction on transient storage errors.
func WithRetrier(r Retrier) StockEventOption {
	return func(uc *StockEventUseCase) { uc.retrier = r }
}

// WithMetrics records movement outcomes.
func WithMetrics(m Metrics) StockEventOption {
	return func(uc *StockEventUseCase) { uc.metrics = m }
}

// WithNegativeStockPolicy sets the policy applied to computed balances.
func WithNegativeStockPolicy(p domain.NegativeStockPolicy) StockEventOption {
	return func(uc *StockEventUseCase) { uc.policy = p }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) StockEventOption {
	return func(uc *StockEventUseCase) { uc.logger = l }
}

// NewStockEventUseCase creates a new StockEventUseCase.
func NewStockEventUseCase(
	txManager TransactionManager,
	cardRepo StockCardRepository,
	lineItemRepo LineItemRepository,
	outboxRepo OutboxRepository,
	factory *LineItemFactory,
	idGen IDGenerator,
	opts ...StockEventOption,
) *StockEventUseCase {
	uc := &StockEventUseCase{
		txManager:    txManager,
		cardRepo:     cardRepo,
		lineItemRepo: lineItemRepo,
		outboxRepo:   outboxRepo,
		factory:      factory,
		idGen:        idGen,
		retrier:      noRetry{},
		metrics:      noopMetrics{},
		policy:       domain.NegativeStockAllow,
		logger:       zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// RecordMovementInput represents input for recording a movement.
type RecordMovementInput struct {
	StockCardID string
	EventID     string
	ActorID     string
	Request     MovementRequest
}

// RecordMovementResult is the outcome of a committed movement.
type RecordMovementResult struct {
	LineItems   []*domain.LineItem
	StockOnHand int
}

// RecordMovement builds line items for the request, computes the resulting
// balance and persists both atomically. The card row stays locked for the
// whole read-compute-write cycle, so movements on one card are serialized.
func (uc *StockEventUseCase) RecordMovement(ctx context.Context, input RecordMovementInput) (*RecordMovementResult, error) {
	start := time.Now()

	result, err := uc.recordMovement(ctx, input)

	uc.metrics.ObserveRecordDuration(time.Since(start))

	if err != nil {
		uc.metrics.ObserveRecordError(err)
		uc.logger.Warn().
			Err(err).
			Str("stock_card_id", input.StockCardID).
			Str("event_id", input.EventID).
			Msg("movement rejected")

		return nil, err
	}

	for _, item := range result.LineItems {
		uc.metrics.ObserveLineItem(item)
		uc.logger.Info().
			Str("stock_card_id", item.StockCardID).
			Str("line_item_id", item.ID).
			Str("event_id", item.OriginEventID).
			Str("kind", item.Kind.String()).
			Int("quantity", item.Quantity).
			Int("previous_stock_on_hand", item.PreviousStockOnHand).
			Int("stock_on_hand", item.StockOnHand).
			Msg("line item recorded")
	}

	return result, nil
}

func (uc *StockEventUseCase) recordMovement(ctx context.Context, input RecordMovementInput) (*RecordMovementResult, error) {
	if input.StockCardID == "" {
		return nil, domain.ErrStockCardNotFound
	}

	if err := domain.ValidateActorID(input.ActorID); err != nil {
		return nil, err
	}

	if input.EventID == "" {
		input.EventID = uc.idGen.Generate()
	}

	var result *RecordMovementResult

	err := uc.retrier.Retry(ctx, func() error {
		r, err := uc.recordInTx(ctx, input)
		if err != nil {
			return err
		}

		result = r

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *StockEventUseCase) recordInTx(ctx context.Context, input RecordMovementInput) (*RecordMovementResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	card, err := uc.cardRepo.GetByIDForUpdate(txCtx, tx, input.StockCardID)
	if err != nil {
		return nil, err
	}

	expectedVersion := card.Version

	items, err := uc.factory.CreateLineItems(txCtx, input.Request, card, input.EventID, input.ActorID)
	if err != nil {
		return nil, err
	}

	stockOnHand := card.StockOnHand
	for _, item := range items {
		stockOnHand, err = domain.ApplyLineItem(item, stockOnHand, uc.policy)
		if err != nil {
			return nil, err
		}

		if err := uc.lineItemRepo.Append(txCtx, tx, item); err != nil {
			return nil, fmt.Errorf("append line item: %w", err)
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   card.ID,
			AggregateType: domain.AggregateTypeStockCard,
			EventType:     domain.EventTypeLineItemRecorded,
			Payload:       domain.NewLineItemRecordedEvent(item).Payload(),
			CreatedAt:     item.RecordedDate,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return nil, fmt.Errorf("write outbox event: %w", err)
		}
	}

	updatedAt := items[len(items)-1].RecordedDate
	err = uc.cardRepo.UpdateStockOnHand(txCtx, tx, card.ID, stockOnHand, expectedVersion, card.Version, updatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	card.StockOnHand = stockOnHand
	card.UpdatedAt = updatedAt

	return &RecordMovementResult{
		LineItems:   items,
		StockOnHand: stockOnHand,
	}, nil
}
