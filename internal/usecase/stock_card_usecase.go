package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/iho/stockledger/internal/domain"
)

// StockCardUseCase handles stock card lifecycle and queries.
type StockCardUseCase struct {
	cardRepo     StockCardRepository
	lineItemRepo LineItemRepository
	idGen        IDGenerator
	clock        Clock
}

// NewStockCardUseCase creates a new StockCardUseCase.
func NewStockCardUseCase(
	cardRepo StockCardRepository,
	lineItemRepo LineItemRepository,
	idGen IDGenerator,
	clock Clock,
) *StockCardUseCase {
	if clock == nil {
		clock = SystemClock{}
	}

	return &StockCardUseCase{
		cardRepo:     cardRepo,
		lineItemRepo: lineItemRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// CreateStockCardInput represents input for creating a stock card.
type CreateStockCardInput struct {
	FacilityID  string
	ProgramID   string
	OrderableID string
}

// CreateStockCard creates an empty stock card.
func (uc *StockCardUseCase) CreateStockCard(ctx context.Context, input CreateStockCardInput) (*domain.StockCard, error) {
	now := uc.clock.Now()
	card := &domain.StockCard{
		ID:          uc.idGen.Generate(),
		FacilityID:  strings.TrimSpace(input.FacilityID),
		ProgramID:   strings.TrimSpace(input.ProgramID),
		OrderableID: strings.TrimSpace(input.OrderableID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := domain.ValidateStockCard(card); err != nil {
		return nil, err
	}

	if err := uc.cardRepo.Create(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}

// GetStockCard retrieves a stock card by ID.
func (uc *StockCardUseCase) GetStockCard(ctx context.Context, id string) (*domain.StockCard, error) {
	return uc.cardRepo.GetByID(ctx, id)
}

// ListStockCards lists stock cards with pagination.
func (uc *StockCardUseCase) ListStockCards(ctx context.Context, limit, offset int) ([]*domain.StockCard, error) {
	return uc.cardRepo.List(ctx, clampPage(limit), max(offset, 0))
}

// ListLineItems lists a card's line items in append order.
func (uc *StockCardUseCase) ListLineItems(ctx context.Context, stockCardID string, limit, offset int) ([]*domain.LineItem, error) {
	if _, err := uc.cardRepo.GetByID(ctx, stockCardID); err != nil {
		return nil, err
	}

	return uc.lineItemRepo.ListByStockCard(ctx, stockCardID, clampPage(limit), max(offset, 0))
}

// StockOnHandAt is the balance of a card as of a point in time.
type StockOnHandAt struct {
	StockCardID string
	At          time.Time
	StockOnHand int
	LineItems   int
}

// GetStockOnHandAt folds the card's line items that occurred on or before at,
// in append order.
func (uc *StockCardUseCase) GetStockOnHandAt(ctx context.Context, stockCardID string, at time.Time) (*StockOnHandAt, error) {
	if _, err := uc.cardRepo.GetByID(ctx, stockCardID); err != nil {
		return nil, err
	}

	items, err := uc.lineItemRepo.ListAllByStockCard(ctx, stockCardID)
	if err != nil {
		return nil, err
	}

	included := make([]*domain.LineItem, 0, len(items))
	for _, item := range items {
		if !item.OccurredDate.After(at) {
			included = append(included, item)
		}
	}

	// History already passed the policy when it was recorded.
	replay, err := domain.Replay(included, 0, domain.NegativeStockAllow)
	if err != nil {
		return nil, err
	}

	return &StockOnHandAt{
		StockCardID: stockCardID,
		At:          at,
		StockOnHand: replay.StockOnHand,
		LineItems:   len(included),
	}, nil
}
