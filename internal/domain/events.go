package domain

import "time"

// Event types
const (
	EventTypeLineItemRecorded = "stock_card.line_item_recorded"
)

// Aggregate types
const (
	AggregateTypeStockCard = "stock_card"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// LineItemRecordedEvent payload
type LineItemRecordedEvent struct {
	LineItemID          string `json:"line_item_id"`
	StockCardID         string `json:"stock_card_id"`
	OriginEventID       string `json:"origin_event_id"`
	Sequence            int64  `json:"sequence"`
	Kind                string `json:"kind"`
	Quantity            int    `json:"quantity"`
	ReasonID            string `json:"reason_id,omitempty"`
	SourceID            string `json:"source_id,omitempty"`
	DestinationID       string `json:"destination_id,omitempty"`
	PreviousStockOnHand int    `json:"previous_stock_on_hand"`
	StockOnHand         int    `json:"stock_on_hand"`
	OccurredDate        string `json:"occurred_date"`
	UserID              string `json:"user_id"`
}

// NewLineItemRecordedEvent builds the outbox payload for a recorded line item.
func NewLineItemRecordedEvent(item *LineItem) LineItemRecordedEvent {
	ev := LineItemRecordedEvent{
		LineItemID:          item.ID,
		StockCardID:         item.StockCardID,
		OriginEventID:       item.OriginEventID,
		Sequence:            item.Sequence,
		Kind:                item.Kind.String(),
		Quantity:            item.Quantity,
		PreviousStockOnHand: item.PreviousStockOnHand,
		StockOnHand:         item.StockOnHand,
		OccurredDate:        item.OccurredDate.UTC().Format(time.RFC3339),
		UserID:              item.UserID,
	}
	if item.Reason != nil {
		ev.ReasonID = item.Reason.ID
	}
	if item.Source != nil {
		ev.SourceID = item.Source.ID
	}
	if item.Destination != nil {
		ev.DestinationID = item.Destination.ID
	}
	return ev
}

// Payload converts the event to the generic outbox payload map.
func (e LineItemRecordedEvent) Payload() map[string]any {
	p := map[string]any{
		"line_item_id":           e.LineItemID,
		"stock_card_id":          e.StockCardID,
		"origin_event_id":        e.OriginEventID,
		"sequence":               e.Sequence,
		"kind":                   e.Kind,
		"quantity":               e.Quantity,
		"previous_stock_on_hand": e.PreviousStockOnHand,
		"stock_on_hand":          e.StockOnHand,
		"occurred_date":          e.OccurredDate,
		"user_id":                e.UserID,
	}
	if e.ReasonID != "" {
		p["reason_id"] = e.ReasonID
	}
	if e.SourceID != "" {
		p["source_id"] = e.SourceID
	}
	if e.DestinationID != "" {
		p["destination_id"] = e.DestinationID
	}
	return p
}
