package usecase

import (
	"context"
	"strings"

	"github.com/iho/stockledger/internal/domain"
)

// ReferenceDataUseCase maintains the reason and node directories.
type ReferenceDataUseCase struct {
	reasonRepo ReasonRepository
	nodeRepo   NodeRepository
	idGen      IDGenerator
	clock      Clock
}

// NewReferenceDataUseCase creates a new ReferenceDataUseCase.
func NewReferenceDataUseCase(reasonRepo ReasonRepository, nodeRepo NodeRepository, idGen IDGenerator, clock Clock) *ReferenceDataUseCase {
	if clock == nil {
		clock = SystemClock{}
	}

	return &ReferenceDataUseCase{
		reasonRepo: reasonRepo,
		nodeRepo:   nodeRepo,
		idGen:      idGen,
		clock:      clock,
	}
}

// CreateReasonInput represents input for creating a reason.
type CreateReasonInput struct {
	Name              string
	Description       string
	Type              domain.ReasonType
	Category          domain.ReasonCategory
	IsFreeTextAllowed bool
}

// CreateReason adds a reason to the directory.
func (uc *ReferenceDataUseCase) CreateReason(ctx context.Context, input CreateReasonInput) (*domain.Reason, error) {
	reason := &domain.Reason{
		ID:                uc.idGen.Generate(),
		Name:              strings.TrimSpace(input.Name),
		Description:       input.Description,
		Type:              domain.ReasonType(strings.ToUpper(string(input.Type))),
		Category:          domain.ReasonCategory(strings.ToUpper(string(input.Category))),
		IsFreeTextAllowed: input.IsFreeTextAllowed,
		CreatedAt:         uc.clock.Now(),
	}

	if err := domain.ValidateReason(reason); err != nil {
		return nil, err
	}

	if err := uc.reasonRepo.Create(ctx, reason); err != nil {
		return nil, err
	}

	return reason, nil
}

// GetReason retrieves a reason by ID.
func (uc *ReferenceDataUseCase) GetReason(ctx context.Context, id string) (*domain.Reason, error) {
	return uc.reasonRepo.GetByID(ctx, id)
}

// ListReasons lists reasons with pagination.
func (uc *ReferenceDataUseCase) ListReasons(ctx context.Context, limit, offset int) ([]*domain.Reason, error) {
	return uc.reasonRepo.List(ctx, clampPage(limit), max(offset, 0))
}

// CreateNodeInput represents input for creating a node.
type CreateNodeInput struct {
	Code              string
	Name              string
	IsRefDataFacility bool
}

// CreateNode adds a node to the directory.
func (uc *ReferenceDataUseCase) CreateNode(ctx context.Context, input CreateNodeInput) (*domain.Node, error) {
	node := &domain.Node{
		ID:                uc.idGen.Generate(),
		Code:              strings.TrimSpace(input.Code),
		Name:              strings.TrimSpace(input.Name),
		IsRefDataFacility: input.IsRefDataFacility,
		CreatedAt:         uc.clock.Now(),
	}

	if err := domain.ValidateNode(node); err != nil {
		return nil, err
	}

	if err := uc.nodeRepo.Create(ctx, node); err != nil {
		return nil, err
	}

	return node, nil
}

// GetNode retrieves a node by ID.
func (uc *ReferenceDataUseCase) GetNode(ctx context.Context, id string) (*domain.Node, error) {
	return uc.nodeRepo.GetByID(ctx, id)
}

// ListNodes lists nodes with pagination.
func (uc *ReferenceDataUseCase) ListNodes(ctx context.Context, limit, offset int) ([]*domain.Node, error) {
	return uc.nodeRepo.List(ctx, clampPage(limit), max(offset, 0))
}
