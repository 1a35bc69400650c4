package postgres

import (
	"context"
	"fmt"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/infrastructure/postgres/generated"
	"github.com/iho/stockledger/internal/usecase"
)

// LineItemRepository implements usecase.LineItemRepository.
type LineItemRepository struct {
	queries *generated.Queries
}

// NewLineItemRepository creates a new LineItemRepository.
func NewLineItemRepository(db generated.DBTX) *LineItemRepository {
	return &LineItemRepository{
		queries: generated.New(db),
	}
}

// Append inserts a line item within a transaction. Line items are never updated.
func (r *LineItemRepository) Append(ctx context.Context, tx usecase.Transaction, item *domain.LineItem) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	params := generated.CreateLineItemParams{
		ID:                  item.ID,
		StockCardID:         item.StockCardID,
		OriginEventID:       item.OriginEventID,
		Sequence:            item.Sequence,
		Kind:                item.Kind.String(),
		Quantity:            int32(item.Quantity),
		SourceFreeText:      item.SourceFreeText,
		DestinationFreeText: item.DestinationFreeText,
		DocumentNumber:      item.DocumentNumber,
		ReasonFreeText:      item.ReasonFreeText,
		Signature:           item.Signature,
		OccurredDate:        timeToPgTimestamptz(item.OccurredDate),
		NoticedDate:         timeToPgTimestamptz(item.NoticedDate),
		RecordedDate:        timeToPgTimestamptz(item.RecordedDate),
		UserID:              item.UserID,
		PreviousStockOnHand: int64(item.PreviousStockOnHand),
		StockOnHand:         int64(item.StockOnHand),
	}
	if item.Reason != nil {
		params.ReasonID = textOrNull(item.Reason.ID)
	}
	if item.Source != nil {
		params.SourceID = textOrNull(item.Source.ID)
	}
	if item.Destination != nil {
		params.DestinationID = textOrNull(item.Destination.ID)
	}

	if err := queries.CreateLineItem(ctx, params); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sequence %d already taken", domain.ErrConcurrentModification, item.Sequence)
		}
		return err
	}

	return nil
}

// ListByStockCard lists a card's line items in append order.
func (r *LineItemRepository) ListByStockCard(ctx context.Context, stockCardID string, limit, offset int) ([]*domain.LineItem, error) {
	rows, err := r.queries.ListLineItemsByStockCard(ctx, generated.ListLineItemsByStockCardParams{
		StockCardID: stockCardID,
		Limit:       int32(limit),
		Offset:      int32(offset),
	})
	if err != nil {
		return nil, err
	}

	items := make([]*domain.LineItem, 0, len(rows))
	for _, row := range rows {
		item, err := rowToLineItem(generated.ListAllLineItemsByStockCardRow(row))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// ListAllByStockCard returns a card's full history in append order.
func (r *LineItemRepository) ListAllByStockCard(ctx context.Context, stockCardID string) ([]*domain.LineItem, error) {
	rows, err := r.queries.ListAllLineItemsByStockCard(ctx, stockCardID)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.LineItem, 0, len(rows))
	for _, row := range rows {
		item, err := rowToLineItem(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func rowToLineItem(row generated.ListAllLineItemsByStockCardRow) (*domain.LineItem, error) {
	kind, err := domain.ParseMovementKind(row.Kind)
	if err != nil {
		return nil, fmt.Errorf("line item %s: %w", row.ID, err)
	}

	item := &domain.LineItem{
		ID:                  row.ID,
		StockCardID:         row.StockCardID,
		OriginEventID:       row.OriginEventID,
		Sequence:            row.Sequence,
		Kind:                kind,
		Quantity:            int(row.Quantity),
		SourceFreeText:      row.SourceFreeText,
		DestinationFreeText: row.DestinationFreeText,
		DocumentNumber:      row.DocumentNumber,
		ReasonFreeText:      row.ReasonFreeText,
		Signature:           row.Signature,
		OccurredDate:        row.OccurredDate.Time,
		NoticedDate:         row.NoticedDate.Time,
		RecordedDate:        row.RecordedDate.Time,
		UserID:              row.UserID,
		PreviousStockOnHand: int(row.PreviousStockOnHand),
		StockOnHand:         int(row.StockOnHand),
	}

	if row.ReasonID.Valid {
		item.Reason = &domain.Reason{
			ID:       row.ReasonID.String,
			Name:     row.ReasonName.String,
			Type:     domain.ReasonType(row.ReasonType.String),
			Category: domain.ReasonCategory(row.ReasonCategory.String),
		}
	}
	if row.SourceID.Valid {
		item.Source = &domain.Node{ID: row.SourceID.String, Code: row.SourceCode.String, Name: row.SourceName.String}
	}
	if row.DestinationID.Valid {
		item.Destination = &domain.Node{ID: row.DestinationID.String, Code: row.DestinationCode.String, Name: row.DestinationName.String}
	}

	return item, nil
}
