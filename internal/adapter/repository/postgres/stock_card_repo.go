package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/infrastructure/postgres/generated"
	"github.com/iho/stockledger/internal/usecase"
)

// StockCardRepository implements usecase.StockCardRepository.
type StockCardRepository struct {
	queries *generated.Queries
}

// NewStockCardRepository creates a new StockCardRepository.
func NewStockCardRepository(db generated.DBTX) *StockCardRepository {
	return &StockCardRepository{
		queries: generated.New(db),
	}
}

// Create creates a new stock card.
func (r *StockCardRepository) Create(ctx context.Context, card *domain.StockCard) error {
	_, err := r.queries.CreateStockCard(ctx, generated.CreateStockCardParams{
		ID:          card.ID,
		FacilityID:  card.FacilityID,
		ProgramID:   card.ProgramID,
		OrderableID: card.OrderableID,
		StockOnHand: int64(card.StockOnHand),
		Version:     card.Version,
		CreatedAt:   timeToPgTimestamptz(card.CreatedAt),
		UpdatedAt:   timeToPgTimestamptz(card.UpdatedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrStockCardExists
	}

	return err
}

// GetByID retrieves a stock card by ID.
func (r *StockCardRepository) GetByID(ctx context.Context, id string) (*domain.StockCard, error) {
	row, err := r.queries.GetStockCardByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStockCardNotFound
		}

		return nil, err
	}

	return rowToStockCard(row), nil
}

// GetByIDForUpdate retrieves a stock card by ID with a FOR UPDATE lock.
func (r *StockCardRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.StockCard, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	row, err := queries.GetStockCardByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStockCardNotFound
		}

		return nil, err
	}

	return rowToStockCard(row), nil
}

// UpdateStockOnHand stores the new balance if nobody bumped the version since it was read.
func (r *StockCardRepository) UpdateStockOnHand(
	ctx context.Context,
	tx usecase.Transaction,
	id string,
	stockOnHand int,
	expectedVersion, newVersion int64,
	updatedAt time.Time,
) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	affected, err := queries.UpdateStockCardStockOnHand(ctx, generated.UpdateStockCardStockOnHandParams{
		ID:          id,
		StockOnHand: int64(stockOnHand),
		Version:     newVersion,
		UpdatedAt:   timeToPgTimestamptz(updatedAt),
		Version_2:   expectedVersion,
	})
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrConcurrentModification
	}

	return nil
}

// List lists stock cards with pagination.
func (r *StockCardRepository) List(ctx context.Context, limit, offset int) ([]*domain.StockCard, error) {
	rows, err := r.queries.ListStockCards(ctx, generated.ListStockCardsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	cards := make([]*domain.StockCard, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, rowToStockCard(row))
	}

	return cards, nil
}

func rowToStockCard(row generated.StockCard) *domain.StockCard {
	return &domain.StockCard{
		ID:          row.ID,
		FacilityID:  row.FacilityID,
		ProgramID:   row.ProgramID,
		OrderableID: row.OrderableID,
		StockOnHand: int(row.StockOnHand),
		Version:     row.Version,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}
