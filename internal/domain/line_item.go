package domain

import (
	"fmt"
	"time"
)

// MovementKind is decided once when a line item is built and drives the balance engine.
type MovementKind int

const (
	KindUnknown MovementKind = iota
	KindPhysicalCount
	KindCredit
	KindDebit
)

// String returns the persisted name of the kind.
func (k MovementKind) String() string {
	switch k {
	case KindPhysicalCount:
		return "PHYSICAL_COUNT"
	case KindCredit:
		return "CREDIT"
	case KindDebit:
		return "DEBIT"
	default:
		return "UNKNOWN"
	}
}

// ParseMovementKind is the inverse of MovementKind.String.
func ParseMovementKind(s string) (MovementKind, error) {
	switch s {
	case "PHYSICAL_COUNT":
		return KindPhysicalCount, nil
	case "CREDIT":
		return KindCredit, nil
	case "DEBIT":
		return KindDebit, nil
	default:
		return KindUnknown, fmt.Errorf("%w: unknown movement kind %q", ErrInvalidShape, s)
	}
}

// LineItem is one immutable movement recorded on a stock card.
type LineItem struct {
	ID            string
	StockCardID   string
	OriginEventID string
	Sequence      int64
	Kind          MovementKind

	Quantity    int
	Reason      *Reason
	Source      *Node
	Destination *Node

	SourceFreeText      string
	DestinationFreeText string
	DocumentNumber      string
	ReasonFreeText      string
	Signature           string

	OccurredDate time.Time
	NoticedDate  time.Time
	RecordedDate time.Time
	UserID       string

	PreviousStockOnHand int
	StockOnHand         int
}

// IsPhysicalCount reports whether the line item is an authoritative recount.
func (li *LineItem) IsPhysicalCount() bool {
	return li.Kind == KindPhysicalCount
}

// DetermineKind maps the nullable reason/source/destination combination to a
// movement kind. A physical count has none of them set. Otherwise exactly one of
// the increase and decrease predicates must hold.
func DetermineKind(reason *Reason, source, destination *Node) (MovementKind, error) {
	if reason == nil && source == nil && destination == nil {
		return KindPhysicalCount, nil
	}

	increase := source != nil || reason.IsCredit()
	decrease := destination != nil || reason.IsDebit()

	switch {
	case increase && decrease:
		return KindUnknown, fmt.Errorf("%w: movement both increases and decreases stock", ErrInvalidShape)
	case increase:
		return KindCredit, nil
	case decrease:
		return KindDebit, nil
	default:
		return KindUnknown, fmt.Errorf("%w: reason %q has no direction and no source or destination is set", ErrInvalidShape, reason.ID)
	}
}
