package messaging

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

var errMalformedMessage = errors.New("malformed movement message")

// MovementMessage is the JSON body of a message on the movements topic.
type MovementMessage struct {
	StockCardID         string  `json:"stock_card_id"`
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

// DecodeMovement parses a message body into a use case input.
func DecodeMovement(value []byte) (usecase.RecordMovementInput, error) {
	var msg MovementMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		return usecase.RecordMovementInput{}, fmt.Errorf("%w: %v", errMalformedMessage, err)
	}

	occurred, err := domain.ParseDate(msg.OccurredDate)
	if err != nil {
		return usecase.RecordMovementInput{}, err
	}

	var noticed *time.Time
	if msg.NoticedDate != nil {
		t, err := domain.ParseDate(*msg.NoticedDate)
		if err != nil {
			return usecase.RecordMovementInput{}, err
		}
		noticed = &t
	}

	return usecase.RecordMovementInput{
		StockCardID: msg.StockCardID,
		EventID:     msg.EventID,
		ActorID:     msg.ActorID,
		Request: usecase.MovementRequest{
			Quantity:            msg.Quantity,
			ReasonID:            msg.ReasonID,
			SourceID:            msg.SourceID,
			DestinationID:       msg.DestinationID,
			SourceFreeText:      msg.SourceFreeText,
			DestinationFreeText: msg.DestinationFreeText,
			DocumentNumber:      msg.DocumentNumber,
			ReasonFreeText:      msg.ReasonFreeText,
			Signature:           msg.Signature,
			OccurredDate:        occurred,
			NoticedDate:         noticed,
		},
	}, nil
}

// isPermanent reports whether retrying the message can never succeed.
func isPermanent(err error) bool {
	for _, target := range []error{
		errMalformedMessage,
		domain.ErrStockCardNotFound,
		domain.ErrReferenceNotFound,
		domain.ErrInvalidShape,
		domain.ErrInvalidQuantity,
		domain.ErrInvalidOccurredDate,
		domain.ErrNegativeStockOnHand,
		domain.ErrInvalidActorID,
		domain.ErrInvalidFreeText,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
