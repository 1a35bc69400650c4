package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Validation errors
var (
	ErrInvalidActorID     = errors.New("invalid actor ID")
	ErrInvalidFreeText    = errors.New("free text field too long")
	ErrInvalidReasonName  = errors.New("invalid reason name")
	ErrInvalidReasonType  = errors.New("invalid reason type")
	ErrInvalidNodeCode    = errors.New("invalid node code")
	ErrInvalidStockCardID = errors.New("invalid stock card reference")
)

// Validation constants
const (
	MaxFreeTextLength = 255
	MaxNameLength     = 255
	MaxCodeLength     = 64
	MaxQuantity       = 1_000_000_000
)

// ValidateQuantity validates a movement quantity. A nil quantity was never supplied.
func ValidateQuantity(quantity *int) error {
	if quantity == nil {
		return fmt.Errorf("%w: quantity is required", ErrInvalidQuantity)
	}

	if *quantity < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, *quantity)
	}

	if *quantity > MaxQuantity {
		return fmt.Errorf("%w: maximum is %d", ErrInvalidQuantity, MaxQuantity)
	}

	return nil
}

// ParseDate parses a business date given either as YYYY-MM-DD or RFC 3339.
// Date-only values are midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidOccurredDate)
	}

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is neither YYYY-MM-DD nor RFC 3339", ErrInvalidOccurredDate, s)
	}

	return t.UTC(), nil
}

// ValidateActorID checks that the acting user id is a UUID.
func ValidateActorID(actorID string) error {
	if _, err := uuid.Parse(actorID); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidActorID, actorID)
	}
	return nil
}

// ValidateFreeText validates the opaque text fields carried by a line item.
func ValidateFreeText(fields map[string]string) error {
	for name, value := range fields {
		if utf8.RuneCountInString(value) > MaxFreeTextLength {
			return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidFreeText, name, MaxFreeTextLength)
		}
	}
	return nil
}

// ValidateReason validates a catalog reason before it is stored.
func ValidateReason(r *Reason) error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidReasonName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidReasonName, MaxNameLength)
	}

	if !r.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidReasonType, r.Type)
	}

	if r.Category != "" && !r.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidReasonType, r.Category)
	}

	return nil
}

// ValidateNode validates a directory node before it is stored.
func ValidateNode(n *Node) error {
	code := strings.TrimSpace(n.Code)
	if code == "" {
		return fmt.Errorf("%w: code cannot be empty", ErrInvalidNodeCode)
	}

	if len(code) > MaxCodeLength {
		return fmt.Errorf("%w: code exceeds %d characters", ErrInvalidNodeCode, MaxCodeLength)
	}

	return nil
}

// ValidateStockCard checks the opaque references a new stock card must carry.
func ValidateStockCard(c *StockCard) error {
	for name, value := range map[string]string{
		"facility_id":  c.FacilityID,
		"program_id":   c.ProgramID,
		"orderable_id": c.OrderableID,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidStockCardID, name)
		}
	}
	return nil
}
