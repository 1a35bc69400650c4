package domain

import "time"

// StockCard holds the ordered movement history of one orderable at one facility.
type StockCard struct {
	ID          string
	FacilityID  string
	ProgramID   string
	OrderableID string
	StockOnHand int
	Version     int64
	LineItems   []*LineItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Append adds a line item at the end of the card's history and assigns its sequence.
// The card's balance is not touched; see ApplyLineItem.
func (c *StockCard) Append(item *LineItem) {
	c.Version++
	item.StockCardID = c.ID
	item.Sequence = c.Version
	c.LineItems = append(c.LineItems, item)
}
