package dto

import (
	"time"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

// CreateStockCardRequest represents a request to open a stock card.
type CreateStockCardRequest struct {
	FacilityID  string `json:"facility_id"`
	ProgramID   string `json:"program_id"`
	OrderableID string `json:"orderable_id"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateStockCardRequest) ToUseCaseInput() usecase.CreateStockCardInput {
	return usecase.CreateStockCardInput{
		FacilityID:  r.FacilityID,
		ProgramID:   r.ProgramID,
		OrderableID: r.OrderableID,
	}
}

// RecordMovementRequest represents a stock event with a single line item.
// A request without reason, source and destination is a physical count.
type RecordMovementRequest struct {
	EventID             string  `json:"event_id,omitempty"`
	ActorID             string  `json:"actor_id"`
	Quantity            *int    `json:"quantity"`
	ReasonID            string  `json:"reason_id,omitempty"`
	SourceID            string  `json:"source_id,omitempty"`
	DestinationID       string  `json:"destination_id,omitempty"`
	SourceFreeText      string  `json:"source_free_text,omitempty"`
	DestinationFreeText string  `json:"destination_free_text,omitempty"`
	DocumentNumber      string  `json:"document_number,omitempty"`
	ReasonFreeText      string  `json:"reason_free_text,omitempty"`
	Signature           string  `json:"signature,omitempty"`
	OccurredDate        string  `json:"occurred_date"`
	NoticedDate         *string `json:"noticed_date,omitempty"`
}

// ToUseCaseInput converts to use case input. Dates are YYYY-MM-DD or RFC 3339.
func (r *RecordMovementRequest) ToUseCaseInput(stockCardID string) (usecase.RecordMovementInput, error) {
	occurred, err := domain.ParseDate(r.OccurredDate)
	if err != nil {
		return usecase.RecordMovementInput{}, err
	}

	var noticed *time.Time
	if r.NoticedDate != nil {
		t, err := domain.ParseDate(*r.NoticedDate)
		if err != nil {
			return usecase.RecordMovementInput{}, err
		}
		noticed = &t
	}

	return usecase.RecordMovementInput{
		StockCardID: stockCardID,
		EventID:     r.EventID,
		ActorID:     r.ActorID,
		Request: usecase.MovementRequest{
			Quantity:            r.Quantity,
			ReasonID:            r.ReasonID,
			SourceID:            r.SourceID,
			DestinationID:       r.DestinationID,
			SourceFreeText:      r.SourceFreeText,
			DestinationFreeText: r.DestinationFreeText,
			DocumentNumber:      r.DocumentNumber,
			ReasonFreeText:      r.ReasonFreeText,
			Signature:           r.Signature,
			OccurredDate:        occurred,
			NoticedDate:         noticed,
		},
	}, nil
}

// CreateReasonRequest represents a request to add a reason.
type CreateReasonRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	Type              string `json:"type"`
	Category          string `json:"category"`
	IsFreeTextAllowed bool   `json:"is_free_text_allowed"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateReasonRequest) ToUseCaseInput() usecase.CreateReasonInput {
	return usecase.CreateReasonInput{
		Name:              r.Name,
		Description:       r.Description,
		Type:              domain.ReasonType(r.Type),
		Category:          domain.ReasonCategory(r.Category),
		IsFreeTextAllowed: r.IsFreeTextAllowed,
	}
}

// CreateNodeRequest represents a request to add a node.
type CreateNodeRequest struct {
	Code              string `json:"code"`
	Name              string `json:"name"`
	IsRefDataFacility bool   `json:"is_ref_data_facility"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateNodeRequest) ToUseCaseInput() usecase.CreateNodeInput {
	return usecase.CreateNodeInput{
		Code:              r.Code,
		Name:              r.Name,
		IsRefDataFacility: r.IsRefDataFacility,
	}
}
