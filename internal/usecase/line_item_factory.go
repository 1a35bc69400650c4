package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/stockledger/internal/domain"
)

// maxClockSkew is how far in the future an occurred date may be relative to
// the recording clock.
const maxClockSkew = time.Minute

// MovementRequest is an inbound movement as produced by the event ingestion pipeline.
type MovementRequest struct {
	Quantity      *int
	ReasonID      string
	SourceID      string
	DestinationID string

	SourceFreeText      string
	DestinationFreeText string
	DocumentNumber      string
	ReasonFreeText      string
	Signature           string

	OccurredDate time.Time
	NoticedDate  *time.Time
}

// LineItemFactory turns movement requests into line items on a stock card.
type LineItemFactory struct {
	reasonRepo ReasonRepository
	nodeRepo   NodeRepository
	idGen      IDGenerator
	clock      Clock
}

// NewLineItemFactory creates a new LineItemFactory.
func NewLineItemFactory(reasonRepo ReasonRepository, nodeRepo NodeRepository, idGen IDGenerator, clock Clock) *LineItemFactory {
	if clock == nil {
		clock = SystemClock{}
	}

	return &LineItemFactory{
		reasonRepo: reasonRepo,
		nodeRepo:   nodeRepo,
		idGen:      idGen,
		clock:      clock,
	}
}

// CreateLineItems validates req, resolves its references and appends the
// resulting line items to card. Nothing is appended when an error is returned.
// One request currently yields exactly one line item.
func (f *LineItemFactory) CreateLineItems(
	ctx context.Context,
	req MovementRequest,
	card *domain.StockCard,
	eventID, actorID string,
) ([]*domain.LineItem, error) {
	if err := domain.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	err := domain.ValidateFreeText(map[string]string{
		"source_free_text":      req.SourceFreeText,
		"destination_free_text": req.DestinationFreeText,
		"document_number":       req.DocumentNumber,
		"reason_free_text":      req.ReasonFreeText,
		"signature":             req.Signature,
	})
	if err != nil {
		return nil, err
	}

	recordedDate := f.clock.Now()
	if err := validateDates(req, recordedDate); err != nil {
		return nil, err
	}

	reason, source, destination, err := f.resolveReferences(ctx, req)
	if err != nil {
		return nil, err
	}

	kind, err := domain.DetermineKind(reason, source, destination)
	if err != nil {
		return nil, err
	}

	noticedDate := req.OccurredDate
	if req.NoticedDate != nil {
		noticedDate = *req.NoticedDate
	}

	item := &domain.LineItem{
		ID:                  f.idGen.Generate(),
		OriginEventID:       eventID,
		Kind:                kind,
		Quantity:            *req.Quantity,
		Reason:              reason,
		Source:              source,
		Destination:         destination,
		SourceFreeText:      req.SourceFreeText,
		DestinationFreeText: req.DestinationFreeText,
		DocumentNumber:      req.DocumentNumber,
		ReasonFreeText:      req.ReasonFreeText,
		Signature:           req.Signature,
		OccurredDate:        req.OccurredDate,
		NoticedDate:         noticedDate,
		RecordedDate:        recordedDate,
		UserID:              actorID,
	}

	card.Append(item)

	return []*domain.LineItem{item}, nil
}

func (f *LineItemFactory) resolveReferences(ctx context.Context, req MovementRequest) (*domain.Reason, *domain.Node, *domain.Node, error) {
	var (
		reason      *domain.Reason
		source      *domain.Node
		destination *domain.Node
		err         error
	)

	if domain.IsPhysicalReasonID(req.ReasonID) {
		return nil, nil, nil, fmt.Errorf("%w: reason %s is assigned by physical counts only", domain.ErrInvalidShape, req.ReasonID)
	}

	if req.ReasonID != "" {
		reason, err = f.reasonRepo.GetByID(ctx, req.ReasonID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("resolve reason: %w", err)
		}
	}

	if req.SourceID != "" {
		source, err = f.nodeRepo.GetByID(ctx, req.SourceID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("resolve source: %w", err)
		}
	}

	if req.DestinationID != "" {
		destination, err = f.nodeRepo.GetByID(ctx, req.DestinationID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("resolve destination: %w", err)
		}
	}

	return reason, source, destination, nil
}

func validateDates(req MovementRequest, recordedDate time.Time) error {
	if req.OccurredDate.IsZero() {
		return fmt.Errorf("%w: occurred date is required", domain.ErrInvalidOccurredDate)
	}

	if req.OccurredDate.After(recordedDate.Add(maxClockSkew)) {
		return fmt.Errorf("%w: %s is in the future", domain.ErrInvalidOccurredDate, req.OccurredDate.Format(time.RFC3339))
	}

	return nil
}
