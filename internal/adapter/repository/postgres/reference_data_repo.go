package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/infrastructure/postgres/generated"
)

// ReasonRepository implements usecase.ReasonRepository.
type ReasonRepository struct {
	queries *generated.Queries
}

// NewReasonRepository creates a new ReasonRepository.
func NewReasonRepository(db generated.DBTX) *ReasonRepository {
	return &ReasonRepository{queries: generated.New(db)}
}

// Create stores a reason.
func (r *ReasonRepository) Create(ctx context.Context, reason *domain.Reason) error {
	return r.queries.CreateReason(ctx, generated.CreateReasonParams{
		ID:                reason.ID,
		Name:              reason.Name,
		Description:       reason.Description,
		ReasonType:        string(reason.Type),
		ReasonCategory:    string(reason.Category),
		IsFreeTextAllowed: reason.IsFreeTextAllowed,
		CreatedAt:         timeToPgTimestamptz(reason.CreatedAt),
	})
}

// GetByID resolves a reason id.
func (r *ReasonRepository) GetByID(ctx context.Context, id string) (*domain.Reason, error) {
	row, err := r.queries.GetReasonByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewReasonNotFoundError(id)
		}

		return nil, err
	}

	return rowToReason(row), nil
}

// List lists reasons with pagination.
func (r *ReasonRepository) List(ctx context.Context, limit, offset int) ([]*domain.Reason, error) {
	rows, err := r.queries.ListReasons(ctx, generated.ListReasonsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	reasons := make([]*domain.Reason, 0, len(rows))
	for _, row := range rows {
		reasons = append(reasons, rowToReason(row))
	}

	return reasons, nil
}

func rowToReason(row generated.StockCardLineItemReason) *domain.Reason {
	return &domain.Reason{
		ID:                row.ID,
		Name:              row.Name,
		Description:       row.Description,
		Type:              domain.ReasonType(row.ReasonType),
		Category:          domain.ReasonCategory(row.ReasonCategory),
		IsFreeTextAllowed: row.IsFreeTextAllowed,
		CreatedAt:         row.CreatedAt.Time,
	}
}

// NodeRepository implements usecase.NodeRepository.
type NodeRepository struct {
	queries *generated.Queries
}

// NewNodeRepository creates a new NodeRepository.
func NewNodeRepository(db generated.DBTX) *NodeRepository {
	return &NodeRepository{queries: generated.New(db)}
}

// Create stores a node.
func (r *NodeRepository) Create(ctx context.Context, node *domain.Node) error {
	err := r.queries.CreateNode(ctx, generated.CreateNodeParams{
		ID:                node.ID,
		Code:              node.Code,
		Name:              node.Name,
		IsRefDataFacility: node.IsRefDataFacility,
		CreatedAt:         timeToPgTimestamptz(node.CreatedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrNodeCodeExists
	}

	return err
}

// GetByID resolves a node id.
func (r *NodeRepository) GetByID(ctx context.Context, id string) (*domain.Node, error) {
	row, err := r.queries.GetNodeByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNodeNotFoundError(id)
		}

		return nil, err
	}

	return rowToNode(row), nil
}

// List lists nodes with pagination.
func (r *NodeRepository) List(ctx context.Context, limit, offset int) ([]*domain.Node, error) {
	rows, err := r.queries.ListNodes(ctx, generated.ListNodesParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	nodes := make([]*domain.Node, 0, len(rows))
	for _, row := range rows {
		nodes = append(nodes, rowToNode(row))
	}

	return nodes, nil
}

func rowToNode(row generated.Node) *domain.Node {
	return &domain.Node{
		ID:                row.ID,
		Code:              row.Code,
		Name:              row.Name,
		IsRefDataFacility: row.IsRefDataFacility,
		CreatedAt:         row.CreatedAt.Time,
	}
}
